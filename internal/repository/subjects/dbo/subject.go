package dbo

import (
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Subject struct {
	ID            string
	UserID        int64
	Name          string
	IsMainSubject bool
	FinalGrade    *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Subject) ToDomain(grades []domain.Grade) domain.Subject {
	if grades == nil {
		grades = make([]domain.Grade, 0)
	}

	return domain.Subject{
		ID:            s.ID,
		Name:          s.Name,
		IsMainSubject: s.IsMainSubject,
		Grades:        grades,
		FinalGrade:    s.FinalGrade,
	}
}

type Grade struct {
	ID          string
	SubjectID   string
	UserID      int64
	Type        string
	Value       float64
	Weight      float64
	Description *string
	Date        time.Time
}

func (g *Grade) ToDomain() domain.Grade {
	return domain.Grade{
		ID:          g.ID,
		Type:        domain.GradeType(g.Type),
		Value:       g.Value,
		Weight:      g.Weight,
		Description: g.Description,
		Date:        g.Date,
	}
}
