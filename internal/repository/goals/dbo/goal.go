package dbo

import (
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Goal struct {
	ID          string
	UserID      int64
	SubjectID   string
	Title       string
	TargetGrade float64
	TargetDate  time.Time
	CreatedAt   time.Time
	RemindedAt  *time.Time
}

func (g *Goal) ToDomain() *domain.Goal {
	return &domain.Goal{
		ID:          g.ID,
		UserID:      g.UserID,
		SubjectID:   g.SubjectID,
		Title:       g.Title,
		TargetGrade: g.TargetGrade,
		TargetDate:  g.TargetDate,
		CreatedAt:   g.CreatedAt,
		RemindedAt:  g.RemindedAt,
	}
}
