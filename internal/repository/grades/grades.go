package grades

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/database"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Save(ctx context.Context, userID int64, subjectID string, grade *domain.Grade) error {
	query := `
		INSERT INTO grades (
			id,
			subject_id,
			user_id,
			type,
			value,
			weight,
			description,
			date,
			created_at,
			updated_at
		)
		SELECT
			$1::UUID,
			s.id,
			s.user_id,
			$4::TEXT,
			$5::DOUBLE PRECISION,
			$6::DOUBLE PRECISION,
			$7::TEXT,
			$8::DATE,
			$9::TIMESTAMPTZ,
			$9::TIMESTAMPTZ
		FROM subjects AS s
		WHERE s.id = $2
		AND s.user_id = $3
	`

	tag, err := r.db.Exec(ctx, query,
		grade.ID,           // $1
		subjectID,          // $2
		userID,             // $3
		string(grade.Type), // $4
		grade.Value,        // $5
		grade.Weight,       // $6
		grade.Description,  // $7
		grade.Date,         // $8
		time.Now(),         // $9
	)
	if database.IsUniqueViolation(err) {
		return ierrors.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ierrors.ErrNotFound
	}

	return nil
}

func (r *repo) Delete(ctx context.Context, userID int64, gradeID string) error {
	query := `
		DELETE FROM grades
		WHERE id = $1
		AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, gradeID, userID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ierrors.ErrNotFound
	}

	return nil
}
