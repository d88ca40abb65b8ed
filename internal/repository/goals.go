package repository

import (
	"context"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Goals interface {
	Save(ctx context.Context, goal *domain.Goal) error
	Goal(ctx context.Context, userID int64, goalID string) (*domain.Goal, error)
	Goals(ctx context.Context, userID int64) ([]*domain.Goal, error)
	Delete(ctx context.Context, userID int64, goalID string) error
	// Due returns goals with a target date in [from, to] that were not reminded yet.
	Due(ctx context.Context, from, to time.Time) ([]*domain.Goal, error)
	MarkReminded(ctx context.Context, goalID string, at time.Time) error
}
