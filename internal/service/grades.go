package service

import (
	"context"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Grades interface {
	Add(ctx context.Context, userID int64, subjectID string, grade NewGrade) (*domain.Grade, error)
	Delete(ctx context.Context, userID int64, gradeID string) error
	// SessionCount is the number of grades the user entered in the current session.
	SessionCount(userID int64) int
}

type NewGrade struct {
	Type        domain.GradeType `json:"type" validate:"grade_type"`
	Value       float64          `json:"value" validate:"gte=1,lte=6"`
	Weight      float64          `json:"weight" validate:"gt=0,lte=10"`
	Description string           `json:"description" validate:"max=200"`
	Date        time.Time        `json:"date"`
}
