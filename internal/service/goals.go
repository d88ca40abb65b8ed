package service

import (
	"context"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Goals interface {
	Create(ctx context.Context, userID int64, goal NewGoal) (*domain.Goal, error)
	Update(ctx context.Context, userID int64, goalID string, goal NewGoal) (*domain.Goal, error)
	Delete(ctx context.Context, userID int64, goalID string) error
	Statuses(ctx context.Context, userID int64, now time.Time) ([]domain.GoalStatus, error)
}

type NewGoal struct {
	SubjectID   string    `json:"subjectId" validate:"required"`
	Title       string    `json:"title" validate:"required,max=120"`
	TargetGrade float64   `json:"targetGrade" validate:"gte=1,lte=6"`
	TargetDate  time.Time `json:"targetDate" validate:"required"`
}
