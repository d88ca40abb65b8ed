package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/database"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/repository/users/dbo"
	"github.com/jackc/pgx/v4"
)

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

// Save registers the user or restores a deleted one. A stored name is never
// overwritten, use SetName for that.
func (r *repo) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id,
			name,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE
		SET
			name = CASE WHEN users.name = '' THEN $2 ELSE users.name END,
			updated_at = $3,
			deleted_at = NULL
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,    // $1
		user.Name,  // $2
		time.Now(), // $3
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *repo) User(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT
			id,
			name,
			created_at,
			updated_at,
			deleted_at
		FROM users
		WHERE id = $1
		AND deleted_at IS NULL
	`

	row := &dbo.User{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&row.ID,
		&row.Name,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.QueryRow.Scan: %w", err)
	}

	return row.ToDomain(), nil
}

func (r *repo) SetName(ctx context.Context, userID int64, name string) error {
	query := `
		UPDATE users
		SET
			name = $2,
			updated_at = $3
		WHERE id = $1
		AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query,
		userID,     // $1
		name,       // $2
		time.Now(), // $3
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

// Delete removes everything the user stored and marks the user deleted.
func (r *repo) Delete(ctx context.Context, userID int64) error {
	deleteSubjectsQuery := `
		DELETE FROM subjects
		WHERE user_id = $1
	`

	deleteAchievementsQuery := `
		DELETE FROM achievements
		WHERE user_id = $1
	`

	deleteUserQuery := `
		UPDATE users
		SET
			name = '',
			deleted_at = $2
		WHERE id = $1
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// grades and goals cascade with their subject
	if _, err = tx.Exec(ctx, deleteSubjectsQuery, userID); err != nil {
		return fmt.Errorf("tx.Exec deleteSubjectsQuery: %w", err)
	}

	if _, err = tx.Exec(ctx, deleteAchievementsQuery, userID); err != nil {
		return fmt.Errorf("tx.Exec deleteAchievementsQuery: %w", err)
	}

	_, err = tx.Exec(
		ctx,
		deleteUserQuery,
		userID,     // $1
		time.Now(), // $2
	)
	if err != nil {
		return fmt.Errorf("tx.Exec deleteUserQuery: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE deleted_at IS NULL
	`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("db.QueryRow.Scan: %w", err)
	}

	return count, nil
}
