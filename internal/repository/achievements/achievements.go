package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/database"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Unlocked(ctx context.Context, userID int64) (map[domain.AchievementID]time.Time, error) {
	query := `
		SELECT
			achievement_id,
			unlocked_at
		FROM achievements
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[domain.AchievementID]time.Time)
	for rows.Next() {
		var (
			id         string
			unlockedAt time.Time
		)
		if err = rows.Scan(&id, &unlockedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		unlocked[domain.AchievementID(id)] = unlockedAt
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return unlocked, nil
}

func (r *repo) Unlock(ctx context.Context, userID int64, ids []domain.AchievementID, at time.Time) error {
	query := `
		INSERT INTO achievements (
			user_id,
			achievement_id,
			unlocked_at
		)
		SELECT $1::BIGINT, UNNEST($2::TEXT[]), $3::TIMESTAMPTZ
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`

	achievementIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		achievementIDs = append(achievementIDs, string(id))
	}

	_, err := r.db.Exec(ctx, query,
		userID,         // $1
		achievementIDs, // $2
		at,             // $3
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}
