package repository

import (
	"context"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Achievements interface {
	Unlocked(ctx context.Context, userID int64) (map[domain.AchievementID]time.Time, error)
	Unlock(ctx context.Context, userID int64, ids []domain.AchievementID, at time.Time) error
}
