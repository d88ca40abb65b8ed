package service

import (
	"context"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Subjects interface {
	// Create adds a subject. A nil isMain picks the kind from the well-known
	// main subjects.
	Create(ctx context.Context, userID int64, name string, isMain *bool) (*domain.Subject, error)
	Subject(ctx context.Context, userID int64, subjectID string) (*domain.Subject, error)
	Subjects(ctx context.Context, userID int64) ([]domain.Subject, error)
	Delete(ctx context.Context, userID int64, subjectID string) error
	Sync(ctx context.Context, userID int64, subjects []SyncSubject) ([]domain.Subject, error)
}

// SyncSubject is a subject uploaded by the web app.
type SyncSubject struct {
	ID            string      `json:"id"`
	Name          string      `json:"name" validate:"required,max=80"`
	IsMainSubject bool        `json:"isMainSubject"`
	FinalGrade    *float64    `json:"finalGrade,omitempty" validate:"omitempty,gte=1,lte=6"`
	Grades        []SyncGrade `json:"grades" validate:"dive"`
}

type SyncGrade struct {
	ID          string  `json:"id"`
	Type        string  `json:"type" validate:"grade_type"`
	Value       float64 `json:"value" validate:"gte=1,lte=6"`
	Weight      float64 `json:"weight" validate:"gt=0,lte=10"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}
