package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
	"github.com/ilyadubrovsky/notenmeister/internal/validation"
)

type svc struct {
	goalsRepo   repository.Goals
	subjectsSvc service.Subjects
	validate    *validator.Validate
}

func NewService(
	goalsRepo repository.Goals,
	subjectsSvc service.Subjects,
	validate *validator.Validate,
) *svc {
	return &svc{
		goalsRepo:   goalsRepo,
		subjectsSvc: subjectsSvc,
		validate:    validate,
	}
}

func (s *svc) Create(ctx context.Context, userID int64, newGoal service.NewGoal) (*domain.Goal, error) {
	if err := s.check(ctx, userID, &newGoal); err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		SubjectID:   newGoal.SubjectID,
		Title:       newGoal.Title,
		TargetGrade: newGoal.TargetGrade,
		TargetDate:  newGoal.TargetDate,
		CreatedAt:   time.Now(),
	}

	if err := s.goalsRepo.Save(ctx, goal); err != nil {
		return nil, fmt.Errorf("goalsRepo.Save: %w", err)
	}

	return goal, nil
}

func (s *svc) Update(ctx context.Context, userID int64, goalID string, newGoal service.NewGoal) (*domain.Goal, error) {
	goal, err := s.goal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if err = s.check(ctx, userID, &newGoal); err != nil {
		return nil, err
	}

	if !goal.TargetDate.Equal(newGoal.TargetDate) {
		goal.RemindedAt = nil
	}
	goal.SubjectID = newGoal.SubjectID
	goal.Title = newGoal.Title
	goal.TargetGrade = newGoal.TargetGrade
	goal.TargetDate = newGoal.TargetDate

	if err = s.goalsRepo.Save(ctx, goal); err != nil {
		return nil, fmt.Errorf("goalsRepo.Save: %w", err)
	}

	return goal, nil
}

func (s *svc) Delete(ctx context.Context, userID int64, goalID string) error {
	if _, err := uuid.Parse(goalID); err != nil {
		return ierrors.ErrNotFound
	}

	if err := s.goalsRepo.Delete(ctx, userID, goalID); err != nil {
		return fmt.Errorf("goalsRepo.Delete: %w", err)
	}

	return nil
}

// Statuses evaluates every goal of the user against the current grades.
func (s *svc) Statuses(ctx context.Context, userID int64, now time.Time) ([]domain.GoalStatus, error) {
	goals, err := s.goalsRepo.Goals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("goalsRepo.Goals: %w", err)
	}
	if len(goals) == 0 {
		return []domain.GoalStatus{}, nil
	}

	subjects, err := s.subjectsSvc.Subjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subjectsSvc.Subjects: %w", err)
	}

	subjectsByID := make(map[string]domain.Subject, len(subjects))
	for _, subject := range subjects {
		subjectsByID[subject.ID] = subject
	}

	statuses := make([]domain.GoalStatus, 0, len(goals))
	for _, goal := range goals {
		statuses = append(statuses, grading.EvaluateGoal(goal, subjectsByID[goal.SubjectID], now))
	}

	return statuses, nil
}

func (s *svc) goal(ctx context.Context, userID int64, goalID string) (*domain.Goal, error) {
	if _, err := uuid.Parse(goalID); err != nil {
		return nil, ierrors.ErrNotFound
	}

	goal, err := s.goalsRepo.Goal(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("goalsRepo.Goal: %w", err)
	}
	if goal == nil {
		return nil, ierrors.ErrNotFound
	}

	return goal, nil
}

// check validates the goal and makes sure its subject belongs to the user.
func (s *svc) check(ctx context.Context, userID int64, newGoal *service.NewGoal) error {
	newGoal.Title = strings.TrimSpace(newGoal.Title)
	if err := validation.Struct(s.validate, newGoal); err != nil {
		return err
	}

	if _, err := s.subjectsSvc.Subject(ctx, userID, newGoal.SubjectID); err != nil {
		return fmt.Errorf("subjectsSvc.Subject: %w", err)
	}

	return nil
}
