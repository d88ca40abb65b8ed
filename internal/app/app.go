package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/notenmeister/internal/api"
	"github.com/ilyadubrovsky/notenmeister/internal/config"
	"github.com/ilyadubrovsky/notenmeister/internal/database/pg"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
	achievementsrepo "github.com/ilyadubrovsky/notenmeister/internal/repository/achievements"
	goalsrepo "github.com/ilyadubrovsky/notenmeister/internal/repository/goals"
	gradesrepo "github.com/ilyadubrovsky/notenmeister/internal/repository/grades"
	"github.com/ilyadubrovsky/notenmeister/internal/repository/memory"
	subjectsrepo "github.com/ilyadubrovsky/notenmeister/internal/repository/subjects"
	usersrepo "github.com/ilyadubrovsky/notenmeister/internal/repository/users"
	"github.com/ilyadubrovsky/notenmeister/internal/service/achievements"
	"github.com/ilyadubrovsky/notenmeister/internal/service/goals"
	"github.com/ilyadubrovsky/notenmeister/internal/service/grades"
	"github.com/ilyadubrovsky/notenmeister/internal/service/reminders"
	"github.com/ilyadubrovsky/notenmeister/internal/service/report"
	"github.com/ilyadubrovsky/notenmeister/internal/service/subjects"
	"github.com/ilyadubrovsky/notenmeister/internal/service/telegram"
	"github.com/ilyadubrovsky/notenmeister/internal/service/token"
	"github.com/ilyadubrovsky/notenmeister/internal/service/user"
	"github.com/ilyadubrovsky/notenmeister/internal/validation"
)

type repositories struct {
	users        repository.Users
	subjects     repository.Subjects
	grades       repository.Grades
	goals        repository.Goals
	achievements repository.Achievements
	close        func()
}

// Run starts the bot, the sync API and the reminders and blocks until SIGINT
// or SIGTERM.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := newRepositories(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("newRepositories: %w", err)
	}
	defer repos.close()

	sessionCache := ttlcache.New[int64, int](
		ttlcache.WithTTL[int64, int](cfg.Grades.SessionTTL),
	)
	go sessionCache.Start()
	defer sessionCache.Stop()

	validate := validation.New()

	userSvc := user.NewService(repos.users)
	subjectsSvc := subjects.NewService(userSvc, repos.subjects, validate)
	gradesSvc := grades.NewService(repos.grades, sessionCache, validate)
	goalsSvc := goals.NewService(repos.goals, subjectsSvc, validate)
	reportSvc := report.NewService(userSvc, subjectsSvc)
	achievementsSvc := achievements.NewService(subjectsSvc, gradesSvc, repos.achievements)
	tokenSvc := token.NewService(cfg.Token)

	telegramSvc, err := telegram.NewService(
		userSvc,
		subjectsSvc,
		gradesSvc,
		goalsSvc,
		reportSvc,
		achievementsSvc,
		tokenSvc,
		cfg.Telegram,
	)
	if err != nil {
		return fmt.Errorf("telegram.NewService: %w", err)
	}

	remindersSvc := reminders.NewService(repos.goals, subjectsSvc, telegramSvc, cfg.Reminders)
	if err = remindersSvc.Start(); err != nil {
		return fmt.Errorf("remindersSvc.Start: %w", err)
	}
	defer remindersSvc.Stop()

	server := api.NewServer(subjectsSvc, reportSvc, tokenSvc, cfg.HTTP)
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Msgf("server.Start: %v", err.Error())
			stop()
		}
	}()

	log.Info().Msg("start telegram bot")
	go telegramSvc.Start()

	log.Info().Msg("app started")
	<-ctx.Done()

	log.Info().Msg("app shutting down")
	telegramSvc.Stop()
	if err = server.Shutdown(context.Background()); err != nil {
		log.Error().Msgf("server.Shutdown: %v", err.Error())
	}

	return nil
}

func newRepositories(ctx context.Context, cfg config.Postgres) (*repositories, error) {
	if cfg.DSN == "" {
		log.Warn().Msg("POSTGRES_DSN is empty, data is kept in memory")
		store := memory.NewStore()
		return &repositories{
			users:        store.Users(),
			subjects:     store.Subjects(),
			grades:       store.Grades(),
			goals:        store.Goals(),
			achievements: store.Achievements(),
			close:        func() {},
		}, nil
	}

	log.Info().Msg("postgresql pool initializing")
	pool, err := pg.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg.New: %w", err)
	}

	if err = pg.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg.Migrate: %w", err)
	}

	return &repositories{
		users:        usersrepo.NewRepository(pool),
		subjects:     subjectsrepo.NewRepository(pool),
		grades:       gradesrepo.NewRepository(pool),
		goals:        goalsrepo.NewRepository(pool),
		achievements: achievementsrepo.NewRepository(pool),
		close:        pool.Close,
	}, nil
}
