package domain

import "time"

type Goal struct {
	ID          string
	UserID      int64
	SubjectID   string
	Title       string
	TargetGrade float64
	TargetDate  time.Time
	CreatedAt   time.Time
	RemindedAt  *time.Time
}

// GoalStatus is a goal evaluated against the current grades of its subject.
type GoalStatus struct {
	Goal         *Goal
	SubjectName  string
	CurrentGrade *float64
	Achieved     bool
	Progress     float64
	DaysLeft     int
}
