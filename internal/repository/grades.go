package repository

import (
	"context"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Grades interface {
	Save(ctx context.Context, userID int64, subjectID string, grade *domain.Grade) error
	Delete(ctx context.Context, userID int64, gradeID string) error
}
