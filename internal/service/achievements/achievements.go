package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

type svc struct {
	subjectsSvc      service.Subjects
	gradesSvc        service.Grades
	achievementsRepo repository.Achievements
}

func NewService(
	subjectsSvc service.Subjects,
	gradesSvc service.Grades,
	achievementsRepo repository.Achievements,
) *svc {
	return &svc{
		subjectsSvc:      subjectsSvc,
		gradesSvc:        gradesSvc,
		achievementsRepo: achievementsRepo,
	}
}

// Evaluate measures every achievement. An achievement stays unlocked once its
// unlock was stored, even if the grades it was earned with are deleted later.
func (s *svc) Evaluate(ctx context.Context, userID int64, now time.Time) ([]domain.Achievement, []domain.Achievement, error) {
	subjects, err := s.subjectsSvc.Subjects(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("subjectsSvc.Subjects: %w", err)
	}

	stored, err := s.achievementsRepo.Unlocked(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("achievementsRepo.Unlocked: %w", err)
	}

	in := input{
		subjects:     subjects,
		sessionCount: s.gradesSvc.SessionCount(userID),
	}
	for _, subject := range subjects {
		in.grades = append(in.grades, subject.Grades...)
	}

	all, unlocked := evaluate(in, stored, now)
	if len(unlocked) == 0 {
		return all, unlocked, nil
	}

	ids := make([]domain.AchievementID, 0, len(unlocked))
	for _, achievement := range unlocked {
		ids = append(ids, achievement.ID)
	}
	if err = s.achievementsRepo.Unlock(ctx, userID, ids, now); err != nil {
		return nil, nil, fmt.Errorf("achievementsRepo.Unlock: %w", err)
	}

	return all, unlocked, nil
}

func evaluate(in input, stored map[domain.AchievementID]time.Time, now time.Time) (all, unlocked []domain.Achievement) {
	all = make([]domain.Achievement, 0, len(definitions))
	unlocked = make([]domain.Achievement, 0)

	for _, def := range definitions {
		achievement := domain.Achievement{
			ID:          def.id,
			Title:       def.title,
			Description: def.description,
			MaxProgress: def.maxProgress,
			Progress:    def.progress(in),
		}
		if achievement.Progress > def.maxProgress {
			achievement.Progress = def.maxProgress
		}

		if unlockedAt, ok := stored[def.id]; ok {
			achievement.Unlocked = true
			achievement.UnlockedAt = &unlockedAt
		} else if achievement.Progress >= def.maxProgress {
			unlockedAt := now
			achievement.Unlocked = true
			achievement.UnlockedAt = &unlockedAt
			unlocked = append(unlocked, achievement)
		}

		all = append(all, achievement)
	}

	return all, unlocked
}
