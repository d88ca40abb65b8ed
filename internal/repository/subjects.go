package repository

import (
	"context"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Subjects interface {
	Save(ctx context.Context, userID int64, subject *domain.Subject) error
	Subject(ctx context.Context, userID int64, subjectID string) (*domain.Subject, error)
	// Subjects returns the subjects of the user with their grades, oldest first.
	Subjects(ctx context.Context, userID int64) ([]domain.Subject, error)
	Delete(ctx context.Context, userID int64, subjectID string) error
	// Replace makes subjects the complete list of the user. Subjects missing from
	// the list are deleted, kept ones keep their goals, grades are rewritten.
	Replace(ctx context.Context, userID int64, subjects []domain.Subject) error
}
