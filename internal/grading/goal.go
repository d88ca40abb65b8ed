package grading

import (
	"math"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

const worstGrade = 6.0

// GoalProgress measures how far current has moved from the worst grade towards
// target, in percent clamped to [0, 100]. A current grade of 0 means "no grades".
func GoalProgress(current, target float64) float64 {
	if current == 0 {
		return 0
	}
	if target >= worstGrade {
		if current <= worstGrade {
			return 100
		}
		return 0
	}

	progress := (worstGrade - current) / (worstGrade - target) * 100
	return math.Min(math.Max(progress, 0), 100)
}

// EvaluateGoal computes the status of goal against the subject it refers to.
func EvaluateGoal(goal *domain.Goal, subject domain.Subject, now time.Time) domain.GoalStatus {
	status := domain.GoalStatus{
		Goal:        goal,
		SubjectName: subject.Name,
		DaysLeft:    DaysUntil(now, goal.TargetDate),
	}

	if !subject.HasGrades() {
		return status
	}

	current := RoundTo(SubjectGrade(subject), 1)
	status.CurrentGrade = &current
	status.Achieved = current <= goal.TargetGrade
	status.Progress = GoalProgress(current, goal.TargetGrade)

	return status
}

// DaysUntil returns the number of days from now to target, rounded up.
// Negative values mean the target date has passed.
func DaysUntil(now, target time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
