package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

const (
	dateLayout    = "02.01.2006"
	remindTimeout = 15 * time.Second
)

type svc struct {
	goalsRepo   repository.Goals
	subjectsSvc service.Subjects
	telegramSvc service.Telegram
	cfg         config.Reminders
	cron        *cron.Cron
}

func NewService(
	goalsRepo repository.Goals,
	subjectsSvc service.Subjects,
	telegramSvc service.Telegram,
	cfg config.Reminders,
) *svc {
	return &svc{
		goalsRepo:   goalsRepo,
		subjectsSvc: subjectsSvc,
		telegramSvc: telegramSvc,
		cfg:         cfg,
	}
}

// Start schedules Run. A run that is still going when the next one is due
// makes the next one skip.
func (s *svc) Start() error {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		sent, err := s.Run(context.Background(), time.Now())
		if err != nil {
			log.Error().Msgf("reminders.Run: %v", err.Error())
			return
		}
		log.Info().Int("sent", sent).Msg("goal reminders sent")
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	log.Info().Str("schedule", s.cfg.Schedule).Msg("start goal reminders")
	s.cron.Start()

	return nil
}

func (s *svc) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *svc) Run(ctx context.Context, now time.Time) (int, error) {
	goals, err := s.goalsRepo.Due(ctx, now, now.Add(s.cfg.Window))
	if err != nil {
		return 0, fmt.Errorf("goalsRepo.Due: %w", err)
	}

	workers := s.cfg.WorkerPoolSize
	if workers < 1 {
		workers = 1
	}

	var (
		sent    int64
		wg      sync.WaitGroup
		jobChan = make(chan *domain.Goal)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for goal := range jobChan {
				if s.remindWorker(ctx, goal, now) {
					atomic.AddInt64(&sent, 1)
				}
			}
		}()
	}

	for _, goal := range goals {
		select {
		case jobChan <- goal:
		case <-ctx.Done():
		}
	}
	close(jobChan)
	wg.Wait()

	return int(sent), ctx.Err()
}

// errSubjectGone skips goals whose subject was deleted after Due returned them.
var errSubjectGone = errors.New("subject of the goal is gone")

func (s *svc) remindWorker(ctx context.Context, goal *domain.Goal, now time.Time) bool {
	ctx, cancel := context.WithTimeout(ctx, remindTimeout)
	defer cancel()

	err := s.remind(ctx, goal, now)
	if errors.Is(err, errSubjectGone) {
		log.Debug().Int64("user", goal.UserID).Str("goal", goal.ID).Msg("remindWorker: subject is gone")
		return false
	}
	if err != nil {
		log.Error().
			Int64("user", goal.UserID).
			Str("goal", goal.ID).
			Msgf("remindWorker: remind: %v", err.Error())
		return false
	}

	return true
}

func (s *svc) remind(ctx context.Context, goal *domain.Goal, now time.Time) error {
	subject, err := s.subjectsSvc.Subject(ctx, goal.UserID, goal.SubjectID)
	if errors.Is(err, ierrors.ErrNotFound) {
		return errSubjectGone
	}
	if err != nil {
		return fmt.Errorf("subjectsSvc.Subject: %w", err)
	}

	status := grading.EvaluateGoal(goal, *subject, now)

	current := "-"
	if status.CurrentGrade != nil {
		current = grading.FormatGrade(*status.CurrentGrade)
	}

	message := fmt.Sprintf(config.GoalReminder,
		config.Escape(goal.Title),
		config.Escape(subject.Name),
		dueText(status.DaysLeft, goal.TargetDate),
		grading.FormatGrade(goal.TargetGrade),
		current,
	)

	if err = s.telegramSvc.SendMessageWithOpts(goal.UserID, message, tele.ModeMarkdown); err != nil {
		return fmt.Errorf("telegramSvc.SendMessageWithOpts: %w", err)
	}

	if err = s.goalsRepo.MarkReminded(ctx, goal.ID, now); err != nil {
		return fmt.Errorf("goalsRepo.MarkReminded: %w", err)
	}

	return nil
}

func dueText(daysLeft int, targetDate time.Time) string {
	switch {
	case daysLeft <= 0:
		return "heute"
	case daysLeft == 1:
		return "morgen"
	default:
		return "am " + targetDate.Format(dateLayout)
	}
}
