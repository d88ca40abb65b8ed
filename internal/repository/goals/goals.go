package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/database"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/repository/goals/dbo"
	"github.com/jackc/pgx/v4"
)

const selectGoalsQuery = `
	SELECT
		id,
		user_id,
		subject_id,
		title,
		target_grade,
		target_date,
		created_at,
		reminded_at
	FROM goals
`

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

// Save creates or updates a goal. Changing the target date resets the reminder.
func (r *repo) Save(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (
			id,
			user_id,
			subject_id,
			title,
			target_grade,
			target_date,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET
			subject_id = $3,
			title = $4,
			target_grade = $5,
			target_date = $6,
			reminded_at = CASE
				WHEN goals.target_date = $6 THEN goals.reminded_at
				ELSE NULL
			END
		WHERE goals.user_id = $2
	`

	_, err := r.db.Exec(ctx, query,
		goal.ID,          // $1
		goal.UserID,      // $2
		goal.SubjectID,   // $3
		goal.Title,       // $4
		goal.TargetGrade, // $5
		goal.TargetDate,  // $6
		goal.CreatedAt,   // $7
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *repo) Goal(ctx context.Context, userID int64, goalID string) (*domain.Goal, error) {
	query := selectGoalsQuery + `
		WHERE id = $1
		AND user_id = $2
	`

	row := &dbo.Goal{}
	err := scanGoal(r.db.QueryRow(ctx, query, goalID, userID), row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanGoal: %w", err)
	}

	return row.ToDomain(), nil
}

func (r *repo) Goals(ctx context.Context, userID int64) ([]*domain.Goal, error) {
	query := selectGoalsQuery + `
		WHERE user_id = $1
		ORDER BY target_date, created_at
	`

	return r.query(ctx, query, userID)
}

func (r *repo) Due(ctx context.Context, from, to time.Time) ([]*domain.Goal, error) {
	query := selectGoalsQuery + `
		WHERE target_date BETWEEN $1::DATE AND $2::DATE
		AND reminded_at IS NULL
		ORDER BY target_date
	`

	return r.query(ctx, query, from, to)
}

func (r *repo) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Goal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		row := &dbo.Goal{}
		if err = scanGoal(rows, row); err != nil {
			return nil, fmt.Errorf("scanGoal: %w", err)
		}

		goals = append(goals, row.ToDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return goals, nil
}

func (r *repo) Delete(ctx context.Context, userID int64, goalID string) error {
	query := `
		DELETE FROM goals
		WHERE id = $1
		AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, goalID, userID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ierrors.ErrNotFound
	}

	return nil
}

func (r *repo) MarkReminded(ctx context.Context, goalID string, at time.Time) error {
	query := `
		UPDATE goals
		SET reminded_at = $2
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, goalID, at); err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func scanGoal(row pgx.Row, goal *dbo.Goal) error {
	return row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.SubjectID,
		&goal.Title,
		&goal.TargetGrade,
		&goal.TargetDate,
		&goal.CreatedAt,
		&goal.RemindedAt,
	)
}
