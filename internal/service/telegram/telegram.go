package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/export"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

type svc struct {
	userSvc         service.User
	subjectsSvc     service.Subjects
	gradesSvc       service.Grades
	goalsSvc        service.Goals
	reportSvc       service.Report
	achievementsSvc service.Achievements
	tokenSvc        service.Token
	bot             *tele.Bot
	cfg             config.Telegram
}

func NewService(
	userSvc service.User,
	subjectsSvc service.Subjects,
	gradesSvc service.Grades,
	goalsSvc service.Goals,
	reportSvc service.Report,
	achievementsSvc service.Achievements,
	tokenSvc service.Token,
	cfg config.Telegram,
) (*svc, error) {
	bot, err := createBot(cfg)
	if err != nil {
		return nil, fmt.Errorf("createBot: %w", err)
	}

	s := &svc{
		userSvc:         userSvc,
		subjectsSvc:     subjectsSvc,
		gradesSvc:       gradesSvc,
		goalsSvc:        goalsSvc,
		reportSvc:       reportSvc,
		achievementsSvc: achievementsSvc,
		tokenSvc:        tokenSvc,
		bot:             bot,
		cfg:             cfg,
	}

	s.setBotSettings()

	return s, nil
}

func createBot(cfg config.Telegram) (*tele.Bot, error) {
	pref := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: cfg.LongPollerDelay},
		OnError: func(err error, c tele.Context) {
			log.Error().Fields(extractTelebotFields(c)).
				Msgf("bot.OnError: %v", err.Error())
		},
	}

	abot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("tele.NewBot: %w", err)
	}

	return abot, nil
}

func (s *svc) setBotSettings() {
	s.bot.Handle("/start", s.handleStartCommand)

	s.bot.Handle("/help", s.handleHelpCommand)

	s.bot.Handle("/gh", s.handleGithubCommand)

	s.bot.Handle(tele.OnText, s.handleText)

	userGroup := s.bot.Group()
	userGroup.Use(s.registeredOnly)

	userGroup.Handle("/name", s.handleNameCommand)

	userGroup.Handle("/fach", s.handleSubjectCommand)

	userGroup.Handle("/faecher", s.handleSubjectsCommand)

	userGroup.Handle("/loeschefach", s.handleDeleteSubjectCommand)

	userGroup.Handle("/note", s.handleGradeCommand)

	userGroup.Handle("/noten", s.handleGradesCommand)

	userGroup.Handle("/loeschenote", s.handleDeleteGradeCommand)

	userGroup.Handle("/schnitt", s.handleSummaryCommand)

	userGroup.Handle("/ziel", s.handleGoalCommand)

	userGroup.Handle("/ziele", s.handleGoalsCommand)

	userGroup.Handle("/loescheziel", s.handleDeleteGoalCommand)

	userGroup.Handle("/erfolge", s.handleAchievementsCommand)

	userGroup.Handle("/export", s.handleExportCommand)

	userGroup.Handle("/token", s.handleTokenCommand)

	adminGroup := s.bot.Group()
	adminGroup.Use(
		middleware.Whitelist(
			s.cfg.AdminID,
		),
	)

	adminGroup.Handle("/aecho", s.handleAdminEchoCommand)

	adminGroup.Handle("/acount", s.handleAdminCountCommand)
}

// registeredOnly answers with config.NotRegistered until the user sent /start.
func (s *svc) registeredOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		_, err := s.userSvc.User(context.Background(), c.Sender().ID)
		if errors.Is(err, ierrors.ErrNotRegistered) {
			return s.SendMessageWithOpts(c.Sender().ID, config.NotRegistered)
		}
		if err != nil {
			log.Error().Int64("user", c.Sender().ID).Msgf("userSvc.User: %v", err.Error())
			return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
		}

		return next(c)
	}
}

func (s *svc) SendMessageWithOpts(id int64, message string, opts ...interface{}) error {
	chat := tele.ChatID(id)

	_, err := s.bot.Send(chat, message, opts...)

	return s.middlewareError(id, err)
}

func (s *svc) SendDocument(id int64, file *export.File, caption string) error {
	document := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(file.Data)),
		FileName: file.Name,
		MIME:     file.ContentType,
		Caption:  caption,
	}

	_, err := s.bot.Send(tele.ChatID(id), document)

	return s.middlewareError(id, err)
}

func (s *svc) middlewareError(targetUserID int64, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tele.ErrBlockedByUser) ||
		errors.Is(err, tele.ErrUserIsDeactivated) ||
		errors.Is(err, tele.ErrNotStartedByUser) {
		deleteErr := s.userSvc.Delete(context.Background(), targetUserID)
		if deleteErr != nil {
			log.Error().Int64("user", targetUserID).Msgf(
				"deleting user with received err %v failed: %v", err, deleteErr,
			)
		}
	}

	return err
}

func (s *svc) Start() {
	s.bot.Start()
}

func (s *svc) Stop() {
	s.bot.Stop()
}
