package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

func datedGrade(value float64, day int) domain.Grade {
	g := grade(domain.GradeTypeEx, value, 1)
	g.Date = time.Date(2024, time.September, day, 0, 0, 0, 0, time.UTC)
	return g
}

func TestSummarize(t *testing.T) {
	subjects := []domain.Subject{
		{Name: "Mathematik", IsMainSubject: true, Grades: []domain.Grade{
			grade(domain.GradeTypeSA, 2, 1),
			grade(domain.GradeTypeEx, 2, 1),
		}},
		{Name: "Sport"},
		{Name: "Deutsch", IsMainSubject: true, Grades: []domain.Grade{
			grade(domain.GradeTypeSA, 4, 1),
		}},
		{Name: "Biologie", Grades: []domain.Grade{
			grade(domain.GradeTypeEx, 1, 1),
			grade(domain.GradeTypeMU, 1, 1),
		}},
	}

	summary := Summarize(subjects)

	assert.InDelta(t, 7.0/3.0, summary.Overall, delta)
	assert.InDelta(t, 3, summary.MainSubjects, delta)
	assert.InDelta(t, 1, summary.OtherSubjects, delta)
	assert.Equal(t, 5, summary.TotalGrades)
	assert.Equal(t, 3, summary.GradedSubjects)

	require.NotNil(t, summary.Best)
	require.NotNil(t, summary.Worst)
	assert.Equal(t, "Biologie", summary.Best.Subject.Name)
	assert.Equal(t, "Deutsch", summary.Worst.Subject.Name)
	assert.Equal(t, Excellent, summary.Best.Class)

	names := make([]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		names = append(names, result.Subject.Name)
	}
	assert.Equal(t, []string{"Biologie", "Mathematik", "Deutsch"}, names)
}

func TestSummarize_NoGrades(t *testing.T) {
	summary := Summarize([]domain.Subject{{Name: "Kunst"}})

	assert.Zero(t, summary.Overall)
	assert.Zero(t, summary.MainSubjects)
	assert.Zero(t, summary.OtherSubjects)
	assert.Nil(t, summary.Best)
	assert.Nil(t, summary.Worst)
	assert.Empty(t, summary.Results)
}

func TestSummarize_TiesKeepInputOrder(t *testing.T) {
	subjects := []domain.Subject{
		{Name: "Physik", Grades: []domain.Grade{grade(domain.GradeTypeEx, 2, 1)}},
		{Name: "Chemie", Grades: []domain.Grade{grade(domain.GradeTypeEx, 2, 1)}},
	}

	summary := Summarize(subjects)

	assert.Equal(t, "Physik", summary.Best.Subject.Name)
	assert.Equal(t, "Physik", summary.Worst.Subject.Name)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		grades []domain.Grade
		want   TrendDirection
	}{
		{name: "no grades", want: TrendStable},
		{name: "single grade", grades: []domain.Grade{datedGrade(1, 1)}, want: TrendStable},
		{name: "improving", grades: []domain.Grade{datedGrade(4, 1), datedGrade(2, 5)}, want: TrendImproving},
		{name: "declining", grades: []domain.Grade{datedGrade(2, 1), datedGrade(3, 5)}, want: TrendDeclining},
		{name: "within threshold", grades: []domain.Grade{datedGrade(2, 1), datedGrade(2, 5), datedGrade(2.2, 9)}, want: TrendStable},
		{
			name:   "order follows dates not input",
			grades: []domain.Grade{datedGrade(1, 20), datedGrade(5, 2), datedGrade(5, 3), datedGrade(1, 21)},
			want:   TrendImproving,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(domain.Subject{Grades: tt.grades}))
		})
	}
}

func TestSplitByDate_OddCount(t *testing.T) {
	older, newer := SplitByDate([]domain.Grade{datedGrade(3, 3), datedGrade(1, 1), datedGrade(2, 2)})

	require.Len(t, older, 1)
	require.Len(t, newer, 2)
	assert.Equal(t, 1.0, older[0].Value)
	assert.Equal(t, []float64{2, 3}, []float64{newer[0].Value, newer[1].Value})
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    float64
	}{
		{name: "no grades", current: 0, target: 2, want: 0},
		{name: "halfway", current: 4, target: 2, want: 50},
		{name: "reached", current: 2, target: 2, want: 100},
		{name: "beyond target is clamped", current: 1, target: 2, want: 100},
		{name: "worst grade", current: 6, target: 2, want: 0},
		{name: "target is worst grade", current: 5, target: 6, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GoalProgress(tt.current, tt.target), delta)
		})
	}
}

func TestEvaluateGoal(t *testing.T) {
	now := time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)
	goal := &domain.Goal{
		ID:          "goal",
		Title:       "Bessere Note in Mathe",
		TargetGrade: 2.5,
		TargetDate:  now.Add(36 * time.Hour),
	}

	t.Run("subject without grades", func(t *testing.T) {
		status := EvaluateGoal(goal, domain.Subject{Name: "Mathematik"}, now)

		assert.Nil(t, status.CurrentGrade)
		assert.False(t, status.Achieved)
		assert.Zero(t, status.Progress)
		assert.Equal(t, 2, status.DaysLeft)
		assert.Equal(t, "Mathematik", status.SubjectName)
	})

	t.Run("achieved", func(t *testing.T) {
		subject := domain.Subject{Name: "Mathematik", IsMainSubject: true, Grades: []domain.Grade{
			grade(domain.GradeTypeSA, 2, 1),
			grade(domain.GradeTypeSA, 4, 1),
			grade(domain.GradeTypeEx, 1, 1),
		}}

		status := EvaluateGoal(goal, subject, now)

		require.NotNil(t, status.CurrentGrade)
		assert.Equal(t, 2.3, *status.CurrentGrade)
		assert.True(t, status.Achieved)
		assert.InDelta(t, 100, status.Progress, delta)
	})

	t.Run("overdue", func(t *testing.T) {
		overdue := *goal
		overdue.TargetDate = now.Add(-72 * time.Hour)

		status := EvaluateGoal(&overdue, domain.Subject{}, now)

		assert.Equal(t, -3, status.DaysLeft)
	})
}
