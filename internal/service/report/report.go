package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/export"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

type svc struct {
	userSvc     service.User
	subjectsSvc service.Subjects
}

func NewService(
	userSvc service.User,
	subjectsSvc service.Subjects,
) *svc {
	return &svc{
		userSvc:     userSvc,
		subjectsSvc: subjectsSvc,
	}
}

func (s *svc) Summary(ctx context.Context, userID int64) (grading.Summary, error) {
	subjects, err := s.subjectsSvc.Subjects(ctx, userID)
	if err != nil {
		return grading.Summary{}, fmt.Errorf("subjectsSvc.Subjects: %w", err)
	}

	return grading.Summarize(subjects), nil
}

func (s *svc) Export(ctx context.Context, userID int64, format export.Format, now time.Time) (*export.File, error) {
	user, err := s.userSvc.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("userSvc.User: %w", err)
	}

	subjects, err := s.subjectsSvc.Subjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subjectsSvc.Subjects: %w", err)
	}

	file, err := export.Render(format, export.Document{
		StudentName: user.StudentName(),
		CreatedAt:   now,
		Subjects:    subjects,
	})
	if err != nil {
		return nil, fmt.Errorf("export.Render: %w", err)
	}

	return file, nil
}
