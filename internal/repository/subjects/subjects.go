package subjects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/database"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/repository/subjects/dbo"
	"github.com/jackc/pgx/v4"
)

const (
	insertSubjectQuery = `
		INSERT INTO subjects (
			id,
			user_id,
			name,
			is_main_subject,
			final_grade,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE
		SET
			name = $3,
			is_main_subject = $4,
			final_grade = $5,
			updated_at = $6
		WHERE subjects.user_id = $2
	`

	insertGradeQuery = `
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`
)

type repo struct {
	db database.PG
}

func NewRepository(db database.PG) *repo {
	return &repo{
		db: db,
	}
}

func (r *repo) Save(ctx context.Context, userID int64, subject *domain.Subject) error {
	tag, err := r.db.Exec(ctx, insertSubjectQuery,
		subject.ID,            // $1
		userID,                // $2
		subject.Name,          // $3
		subject.IsMainSubject, // $4
		subject.FinalGrade,    // $5
		time.Now(),            // $6
	)
	if database.IsUniqueViolation(err) {
		return ierrors.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	// the id belongs to another user, the conditional update skipped the row
	if tag.RowsAffected() == 0 {
		return ierrors.ErrAlreadyExists
	}

	return nil
}

func (r *repo) Subject(ctx context.Context, userID int64, subjectID string) (*domain.Subject, error) {
	subjectQuery := `
		SELECT
			id,
			user_id,
			name,
			is_main_subject,
			final_grade,
			created_at,
			updated_at
		FROM subjects
		WHERE id = $1
		AND user_id = $2
	`

	row := &dbo.Subject{}
	err := r.db.QueryRow(ctx, subjectQuery, subjectID, userID).Scan(
		&row.ID,
		&row.UserID,
		&row.Name,
		&row.IsMainSubject,
		&row.FinalGrade,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.QueryRow.Scan: %w", err)
	}

	grades, err := r.grades(ctx, `WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("r.grades: %w", err)
	}

	subject := row.ToDomain(grades[subjectID])
	return &subject, nil
}

func (r *repo) Subjects(ctx context.Context, userID int64) ([]domain.Subject, error) {
	query := `
		SELECT
			id,
			user_id,
			name,
			is_main_subject,
			final_grade,
			created_at,
			updated_at
		FROM subjects
		WHERE user_id = $1
		ORDER BY created_at, name
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	dboSubjects := make([]*dbo.Subject, 0)
	for rows.Next() {
		row := &dbo.Subject{}
		err = rows.Scan(
			&row.ID,
			&row.UserID,
			&row.Name,
			&row.IsMainSubject,
			&row.FinalGrade,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		dboSubjects = append(dboSubjects, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	grades, err := r.grades(ctx, `WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("r.grades: %w", err)
	}

	subjects := make([]domain.Subject, 0, len(dboSubjects))
	for _, row := range dboSubjects {
		subjects = append(subjects, row.ToDomain(grades[row.ID]))
	}

	return subjects, nil
}

// grades loads grades matching the where clause grouped by subject id, in
// chronological order.
func (r *repo) grades(ctx context.Context, where string, args ...interface{}) (map[string][]domain.Grade, error) {
	query := `
		SELECT
			id,
			subject_id,
			user_id,
			type,
			value,
			weight,
			description,
			date
		FROM grades
	` + where + `
		ORDER BY date, created_at
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	grades := make(map[string][]domain.Grade)
	for rows.Next() {
		row := &dbo.Grade{}
		err = rows.Scan(
			&row.ID,
			&row.SubjectID,
			&row.UserID,
			&row.Type,
			&row.Value,
			&row.Weight,
			&row.Description,
			&row.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		grades[row.SubjectID] = append(grades[row.SubjectID], row.ToDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return grades, nil
}

func (r *repo) Delete(ctx context.Context, userID int64, subjectID string) error {
	query := `
		DELETE FROM subjects
		WHERE id = $1
		AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, subjectID, userID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ierrors.ErrNotFound
	}

	return nil
}

// Replace stores subjects as the complete list of the user. Subjects missing from
// the list are deleted with their goals, the kept ones are updated in place and
// all grades of the user are rewritten.
func (r *repo) Replace(ctx context.Context, userID int64, subjects []domain.Subject) error {
	deleteGradesQuery := `
		DELETE FROM grades
		WHERE user_id = $1
	`

	deleteSubjectsQuery := `
		DELETE FROM subjects
		WHERE user_id = $1
		AND NOT (id = ANY($2::uuid[]))
	`

	// created_at follows the incoming order for ORDER BY created_at
	upsertSubjectQuery := `
		INSERT INTO subjects (
			id,
			user_id,
			name,
			is_main_subject,
			final_grade,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE
		SET
			name = $3,
			is_main_subject = $4,
			final_grade = $5,
			created_at = $6,
			updated_at = $6
		WHERE subjects.user_id = $2
	`

	ids := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		ids = append(ids, subject.ID)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// renames may swap names between kept subjects
	if _, err = tx.Exec(ctx, `SET CONSTRAINTS subjects_user_id_name_key DEFERRED`); err != nil {
		return fmt.Errorf("tx.Exec set constraints: %w", err)
	}

	if _, err = tx.Exec(ctx, deleteGradesQuery, userID); err != nil {
		return fmt.Errorf("tx.Exec deleteGradesQuery: %w", err)
	}

	if _, err = tx.Exec(ctx, deleteSubjectsQuery, userID, ids); err != nil {
		return fmt.Errorf("tx.Exec deleteSubjectsQuery: %w", err)
	}

	timeNow := time.Now()
	for i, subject := range subjects {
		createdAt := timeNow.Add(time.Duration(i) * time.Microsecond)
		tag, err := tx.Exec(
			ctx,
			upsertSubjectQuery,
			subject.ID,            // $1
			userID,                // $2
			subject.Name,          // $3
			subject.IsMainSubject, // $4
			subject.FinalGrade,    // $5
			createdAt,             // $6
		)
		if database.IsUniqueViolation(err) {
			return ierrors.ErrAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("tx.Exec upsertSubjectQuery: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ierrors.ErrAlreadyExists
		}

		for _, grade := range subject.Grades {
			_, err = tx.Exec(
				ctx,
				insertGradeQuery,
				grade.ID,           // $1
				subject.ID,         // $2
				userID,             // $3
				string(grade.Type), // $4
				grade.Value,        // $5
				grade.Weight,       // $6
				grade.Description,  // $7
				grade.Date,         // $8
				timeNow,            // $9
			)
			if database.IsUniqueViolation(err) {
				return ierrors.ErrAlreadyExists
			}
			if err != nil {
				return fmt.Errorf("tx.Exec insertGradeQuery: %w", err)
			}
		}
	}

	err = tx.Commit(ctx)
	if database.IsUniqueViolation(err) {
		return ierrors.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
