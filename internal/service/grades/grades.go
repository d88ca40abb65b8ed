package grades

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
	"github.com/ilyadubrovsky/notenmeister/internal/validation"
)

type svc struct {
	gradesRepo   repository.Grades
	sessionCache *ttlcache.Cache[int64, int]
	validate     *validator.Validate
}

// NewService counts grades per user in sessionCache. An entry lives for the
// cache TTL after the last added grade.
func NewService(
	gradesRepo repository.Grades,
	sessionCache *ttlcache.Cache[int64, int],
	validate *validator.Validate,
) *svc {
	return &svc{
		gradesRepo:   gradesRepo,
		sessionCache: sessionCache,
		validate:     validate,
	}
}

func (s *svc) Add(ctx context.Context, userID int64, subjectID string, newGrade service.NewGrade) (*domain.Grade, error) {
	if err := validation.Struct(s.validate, newGrade); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(subjectID); err != nil {
		return nil, ierrors.ErrNotFound
	}

	grade := &domain.Grade{
		ID:     uuid.NewString(),
		Type:   newGrade.Type,
		Value:  newGrade.Value,
		Weight: newGrade.Weight,
		Date:   newGrade.Date,
	}
	if grade.Date.IsZero() {
		grade.Date = time.Now()
	}
	if description := strings.TrimSpace(newGrade.Description); description != "" {
		grade.Description = &description
	}

	if err := s.gradesRepo.Save(ctx, userID, subjectID, grade); err != nil {
		return nil, fmt.Errorf("gradesRepo.Save: %w", err)
	}

	s.sessionCache.Set(userID, s.SessionCount(userID)+1, ttlcache.DefaultTTL)

	return grade, nil
}

func (s *svc) Delete(ctx context.Context, userID int64, gradeID string) error {
	if _, err := uuid.Parse(gradeID); err != nil {
		return ierrors.ErrNotFound
	}

	if err := s.gradesRepo.Delete(ctx, userID, gradeID); err != nil {
		return fmt.Errorf("gradesRepo.Delete: %w", err)
	}

	return nil
}

func (s *svc) SessionCount(userID int64) int {
	item := s.sessionCache.Get(userID)
	if item == nil || item.IsExpired() {
		return 0
	}

	return item.Value()
}
