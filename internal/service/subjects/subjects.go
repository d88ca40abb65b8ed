package subjects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
	"github.com/ilyadubrovsky/notenmeister/internal/validation"
)

const syncDateLayout = "2006-01-02"

type syncRequest struct {
	Subjects []service.SyncSubject `json:"subjects" validate:"max=100,dive"`
}

type svc struct {
	userSvc      service.User
	subjectsRepo repository.Subjects
	validate     *validator.Validate
}

func NewService(
	userSvc service.User,
	subjectsRepo repository.Subjects,
	validate *validator.Validate,
) *svc {
	return &svc{
		userSvc:      userSvc,
		subjectsRepo: subjectsRepo,
		validate:     validate,
	}
}

func (s *svc) Create(ctx context.Context, userID int64, name string, isMain *bool) (*domain.Subject, error) {
	name = strings.TrimSpace(name)
	if err := s.validate.Var(name, "required,max=80"); err != nil {
		return nil, fmt.Errorf("%w: name must have 1-80 characters", ierrors.ErrInvalidInput)
	}

	if _, err := s.userSvc.User(ctx, userID); err != nil {
		return nil, err
	}

	subject := &domain.Subject{
		ID:            uuid.NewString(),
		Name:          name,
		IsMainSubject: domain.IsWellKnownMainSubject(name),
		Grades:        []domain.Grade{},
	}
	if isMain != nil {
		subject.IsMainSubject = *isMain
	}

	if err := s.subjectsRepo.Save(ctx, userID, subject); err != nil {
		return nil, fmt.Errorf("subjectsRepo.Save: %w", err)
	}

	return subject, nil
}

func (s *svc) Subject(ctx context.Context, userID int64, subjectID string) (*domain.Subject, error) {
	if _, err := uuid.Parse(subjectID); err != nil {
		return nil, ierrors.ErrNotFound
	}

	subject, err := s.subjectsRepo.Subject(ctx, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("subjectsRepo.Subject: %w", err)
	}
	if subject == nil {
		return nil, ierrors.ErrNotFound
	}

	return subject, nil
}

func (s *svc) Subjects(ctx context.Context, userID int64) ([]domain.Subject, error) {
	subjects, err := s.subjectsRepo.Subjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subjectsRepo.Subjects: %w", err)
	}

	return subjects, nil
}

func (s *svc) Delete(ctx context.Context, userID int64, subjectID string) error {
	if _, err := uuid.Parse(subjectID); err != nil {
		return ierrors.ErrNotFound
	}

	if err := s.subjectsRepo.Delete(ctx, userID, subjectID); err != nil {
		return fmt.Errorf("subjectsRepo.Delete: %w", err)
	}

	return nil
}

// Sync replaces all subjects of the user with the uploaded ones. IDs that are not
// UUIDs are replaced by new ones.
func (s *svc) Sync(ctx context.Context, userID int64, subjects []service.SyncSubject) ([]domain.Subject, error) {
	if err := validation.Struct(s.validate, syncRequest{Subjects: subjects}); err != nil {
		return nil, err
	}

	if _, err := s.userSvc.User(ctx, userID); err != nil {
		return nil, err
	}

	result := make([]domain.Subject, 0, len(subjects))
	for _, syncSubject := range subjects {
		subject, err := toDomainSubject(syncSubject)
		if err != nil {
			return nil, err
		}
		result = append(result, subject)
	}

	if err := s.subjectsRepo.Replace(ctx, userID, result); err != nil {
		return nil, fmt.Errorf("subjectsRepo.Replace: %w", err)
	}

	return result, nil
}

func toDomainSubject(syncSubject service.SyncSubject) (domain.Subject, error) {
	subject := domain.Subject{
		ID:            syncID(syncSubject.ID),
		Name:          strings.TrimSpace(syncSubject.Name),
		IsMainSubject: syncSubject.IsMainSubject,
		Grades:        make([]domain.Grade, 0, len(syncSubject.Grades)),
		FinalGrade:    syncSubject.FinalGrade,
	}

	for _, syncGrade := range syncSubject.Grades {
		date, err := time.Parse(syncDateLayout, syncGrade.Date)
		if err != nil {
			return domain.Subject{}, fmt.Errorf("%w: date %q", ierrors.ErrInvalidInput, syncGrade.Date)
		}

		subject.Grades = append(subject.Grades, domain.Grade{
			ID:          syncID(syncGrade.ID),
			Type:        domain.GradeType(syncGrade.Type),
			Value:       syncGrade.Value,
			Weight:      syncGrade.Weight,
			Description: syncGrade.Description,
			Date:        date,
		})
	}

	return subject, nil
}

func syncID(id string) string {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return uuid.NewString()
}
