package service

import (
	"context"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Achievements interface {
	// Evaluate returns all achievements and the ones unlocked by this call.
	Evaluate(ctx context.Context, userID int64, now time.Time) (all, unlocked []domain.Achievement, err error)
}
