package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/export"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

func (s *svc) handleStartCommand(c tele.Context) error {
	err := s.userSvc.Register(context.Background(), c.Sender().ID, c.Sender().FirstName)
	if err != nil {
		log.Error().Int64("user", c.Sender().ID).Msgf("userSvc.Register: %v", err.Error())
		return s.SendMessageWithOpts(c.Sender().ID, config.StartError)
	}

	return s.SendMessageWithOpts(c.Sender().ID, config.Start)
}

func (s *svc) handleHelpCommand(c tele.Context) error {
	return s.SendMessageWithOpts(c.Sender().ID, config.Help)
}

func (s *svc) handleGithubCommand(c tele.Context) error {
	return s.SendMessageWithOpts(c.Sender().ID, config.Github, tele.ModeMarkdown)
}

func (s *svc) handleText(c tele.Context) error {
	return s.SendMessageWithOpts(c.Sender().ID, config.Default)
}

func (s *svc) handleNameCommand(c tele.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return s.SendMessageWithOpts(c.Sender().ID, config.NameNoEntered)
	}

	err := s.userSvc.SetName(context.Background(), c.Sender().ID, name)
	if errors.Is(err, ierrors.ErrInvalidInput) {
		return s.SendMessageWithOpts(c.Sender().ID, config.NameNoEntered)
	}
	if err != nil {
		return s.botError(c, "userSvc.SetName", err)
	}

	return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf(config.NameSaved, config.Escape(name)), tele.ModeMarkdown)
}

func (s *svc) handleSubjectCommand(c tele.Context) error {
	name, isMain, err := parseSubjectPayload(c.Message().Payload)
	switch {
	case errors.Is(err, errInvalidKind):
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectKindInvalid, tele.ModeMarkdown)
	case err != nil:
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNoEntered)
	}

	subject, err := s.subjectsSvc.Create(context.Background(), c.Sender().ID, name, isMain)
	switch {
	case errors.Is(err, ierrors.ErrAlreadyExists):
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectExists)
	case errors.Is(err, ierrors.ErrInvalidInput):
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNoEntered)
	case err != nil:
		return s.botError(c, "subjectsSvc.Create", err)
	}

	return s.SendMessageWithOpts(
		c.Sender().ID,
		fmt.Sprintf(config.SubjectCreated, config.Escape(subject.Name), subjectKind(subject.IsMainSubject)),
		tele.ModeMarkdown,
	)
}

func (s *svc) handleSubjectsCommand(c tele.Context) error {
	subjects, err := s.subjectsSvc.Subjects(context.Background(), c.Sender().ID)
	if err != nil {
		return s.botError(c, "subjectsSvc.Subjects", err)
	}
	if len(subjects) == 0 {
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectsEmpty)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatSubjects(subjects), tele.ModeMarkdown)
}

func (s *svc) handleDeleteSubjectCommand(c tele.Context) error {
	subject, err := s.subjectByPosition(c.Sender().ID, c.Message().Payload)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNotFound)
	}
	if err != nil {
		return s.botError(c, "subjectByPosition", err)
	}

	err = s.subjectsSvc.Delete(context.Background(), c.Sender().ID, subject.ID)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNotFound)
	}
	if err != nil {
		return s.botError(c, "subjectsSvc.Delete", err)
	}

	return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf(config.SubjectDeleted, config.Escape(subject.Name)), tele.ModeMarkdown)
}

func (s *svc) handleGradeCommand(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	cmd, err := parseGradePayload(c.Message().Payload, time.Now())
	switch {
	case errors.Is(err, errInvalidType):
		return s.SendMessageWithOpts(userID, config.GradeTypeInvalid)
	case errors.Is(err, errInvalidValue):
		return s.SendMessageWithOpts(userID, config.GradeInvalid)
	case err != nil:
		return s.SendMessageWithOpts(userID, config.GradeFormIgnored)
	}

	subject, err := s.subjectByPosition(userID, cmd.subjectPosition)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(userID, config.SubjectNotFound)
	}
	if err != nil {
		return s.botError(c, "subjectByPosition", err)
	}

	grade, err := s.gradesSvc.Add(ctx, userID, subject.ID, cmd.grade)
	switch {
	case errors.Is(err, ierrors.ErrInvalidInput):
		return s.SendMessageWithOpts(userID, config.GradeInvalid)
	case errors.Is(err, ierrors.ErrNotFound):
		return s.SendMessageWithOpts(userID, config.SubjectNotFound)
	case err != nil:
		return s.botError(c, "gradesSvc.Add", err)
	}

	subject.Grades = append(subject.Grades, *grade)
	message := fmt.Sprintf(config.GradeAdded,
		grading.FormatGrade(grade.Value),
		grade.Type.Label(),
		config.Escape(subject.Name),
		grading.FormatGrade(grading.SubjectGrade(*subject)),
	)
	if err = s.SendMessageWithOpts(userID, message, tele.ModeMarkdown); err != nil {
		return err
	}

	return s.announceAchievements(ctx, userID)
}

func (s *svc) handleGradesCommand(c tele.Context) error {
	subject, err := s.subjectByPosition(c.Sender().ID, c.Message().Payload)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNotFound)
	}
	if err != nil {
		return s.botError(c, "subjectByPosition", err)
	}

	if !subject.HasGrades() {
		return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf(config.GradesEmpty, config.Escape(subject.Name)), tele.ModeMarkdown)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatGrades(*subject), tele.ModeMarkdown)
}

func (s *svc) handleDeleteGradeCommand(c tele.Context) error {
	fields := strings.Fields(c.Message().Payload)
	if len(fields) != 2 {
		return s.SendMessageWithOpts(c.Sender().ID, config.GradeNotFound)
	}

	subject, err := s.subjectByPosition(c.Sender().ID, fields[0])
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNotFound)
	}
	if err != nil {
		return s.botError(c, "subjectByPosition", err)
	}

	index, ok := parsePosition(fields[1], len(subject.Grades))
	if !ok {
		return s.SendMessageWithOpts(c.Sender().ID, config.GradeNotFound)
	}

	err = s.gradesSvc.Delete(context.Background(), c.Sender().ID, subject.Grades[index].ID)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.GradeNotFound)
	}
	if err != nil {
		return s.botError(c, "gradesSvc.Delete", err)
	}

	subject.Grades = append(subject.Grades[:index], subject.Grades[index+1:]...)
	return s.SendMessageWithOpts(
		c.Sender().ID,
		fmt.Sprintf(config.GradeDeleted, grading.FormatGrade(grading.SubjectGrade(*subject))),
		tele.ModeMarkdown,
	)
}

func (s *svc) handleSummaryCommand(c tele.Context) error {
	summary, err := s.reportSvc.Summary(context.Background(), c.Sender().ID)
	if err != nil {
		return s.botError(c, "reportSvc.Summary", err)
	}
	if summary.TotalGrades == 0 {
		return s.SendMessageWithOpts(c.Sender().ID, config.SummaryEmpty)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatSummary(summary), tele.ModeMarkdown)
}

func (s *svc) handleGoalCommand(c tele.Context) error {
	cmd, err := parseGoalPayload(c.Message().Payload)
	if err != nil {
		return s.SendMessageWithOpts(c.Sender().ID, config.GoalFormIgnored)
	}

	subject, err := s.subjectByPosition(c.Sender().ID, cmd.subjectPosition)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.SubjectNotFound)
	}
	if err != nil {
		return s.botError(c, "subjectByPosition", err)
	}

	goal, err := s.goalsSvc.Create(context.Background(), c.Sender().ID, service.NewGoal{
		SubjectID:   subject.ID,
		Title:       cmd.title,
		TargetGrade: cmd.targetGrade,
		TargetDate:  cmd.targetDate,
	})
	if errors.Is(err, ierrors.ErrInvalidInput) {
		return s.SendMessageWithOpts(c.Sender().ID, config.GoalInvalid)
	}
	if err != nil {
		return s.botError(c, "goalsSvc.Create", err)
	}

	return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf(config.GoalCreated, config.Escape(goal.Title)), tele.ModeMarkdown)
}

func (s *svc) handleGoalsCommand(c tele.Context) error {
	statuses, err := s.goalsSvc.Statuses(context.Background(), c.Sender().ID, time.Now())
	if err != nil {
		return s.botError(c, "goalsSvc.Statuses", err)
	}
	if len(statuses) == 0 {
		return s.SendMessageWithOpts(c.Sender().ID, config.GoalsEmpty)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatGoals(statuses), tele.ModeMarkdown)
}

func (s *svc) handleDeleteGoalCommand(c tele.Context) error {
	ctx := context.Background()

	statuses, err := s.goalsSvc.Statuses(ctx, c.Sender().ID, time.Now())
	if err != nil {
		return s.botError(c, "goalsSvc.Statuses", err)
	}

	index, ok := parsePosition(c.Message().Payload, len(statuses))
	if !ok {
		return s.SendMessageWithOpts(c.Sender().ID, config.GoalNotFound)
	}

	err = s.goalsSvc.Delete(ctx, c.Sender().ID, statuses[index].Goal.ID)
	if errors.Is(err, ierrors.ErrNotFound) {
		return s.SendMessageWithOpts(c.Sender().ID, config.GoalNotFound)
	}
	if err != nil {
		return s.botError(c, "goalsSvc.Delete", err)
	}

	return s.SendMessageWithOpts(c.Sender().ID, config.GoalDeleted)
}

func (s *svc) handleAchievementsCommand(c tele.Context) error {
	achievements, _, err := s.achievementsSvc.Evaluate(context.Background(), c.Sender().ID, time.Now())
	if err != nil {
		return s.botError(c, "achievementsSvc.Evaluate", err)
	}

	return s.SendMessageWithOpts(c.Sender().ID, formatAchievements(achievements), tele.ModeMarkdown)
}

func (s *svc) handleExportCommand(c tele.Context) error {
	format, err := export.ParseFormat(c.Message().Payload)
	if err != nil {
		return s.SendMessageWithOpts(c.Sender().ID, config.ExportFormIgnored)
	}

	file, err := s.reportSvc.Export(context.Background(), c.Sender().ID, format, time.Now())
	if err != nil {
		return s.botError(c, "reportSvc.Export", err)
	}

	return s.SendDocument(c.Sender().ID, file, "")
}

func (s *svc) handleTokenCommand(c tele.Context) error {
	token, expiresAt, err := s.tokenSvc.Issue(c.Sender().ID, time.Now())
	if err != nil {
		return s.botError(c, "tokenSvc.Issue", err)
	}

	return s.SendMessageWithOpts(
		c.Sender().ID,
		fmt.Sprintf(config.TokenIssued, expiresAt.Format(dateLayout), token),
		tele.ModeMarkdown,
	)
}

func (s *svc) handleAdminEchoCommand(c tele.Context) error {
	return s.SendMessageWithOpts(c.Sender().ID, c.Message().Payload, tele.ModeMarkdown)
}

func (s *svc) handleAdminCountCommand(c tele.Context) error {
	count, err := s.userSvc.Count(context.Background())
	if err != nil {
		return s.botError(c, "userSvc.Count", err)
	}

	return s.SendMessageWithOpts(c.Sender().ID, fmt.Sprintf("Registrierte Nutzer: %d", count))
}

// subjectByPosition resolves a 1-based position in the /faecher list.
func (s *svc) subjectByPosition(userID int64, position string) (*domain.Subject, error) {
	subjects, err := s.subjectsSvc.Subjects(context.Background(), userID)
	if err != nil {
		return nil, fmt.Errorf("subjectsSvc.Subjects: %w", err)
	}

	index, ok := parsePosition(position, len(subjects))
	if !ok {
		return nil, ierrors.ErrNotFound
	}

	return &subjects[index], nil
}

func (s *svc) announceAchievements(ctx context.Context, userID int64) error {
	_, unlocked, err := s.achievementsSvc.Evaluate(ctx, userID, time.Now())
	if err != nil {
		log.Error().Int64("user", userID).Msgf("achievementsSvc.Evaluate: %v", err.Error())
		return nil
	}

	for _, achievement := range unlocked {
		message := fmt.Sprintf(config.AchievementUnlocked, config.Escape(achievement.Title), config.Escape(achievement.Description))
		if err = s.SendMessageWithOpts(userID, message, tele.ModeMarkdown); err != nil {
			return err
		}
	}

	return nil
}

func (s *svc) botError(c tele.Context, call string, err error) error {
	log.Error().Int64("user", c.Sender().ID).Msgf("%s: %v", call, err.Error())
	return s.SendMessageWithOpts(c.Sender().ID, config.BotError)
}

func extractTelebotFields(c tele.Context) map[string]interface{} {
	fields := make(map[string]interface{})
	if c == nil {
		return fields
	}

	if sender := c.Sender(); sender != nil {
		fields["user"] = sender.ID
	}
	if message := c.Message(); message != nil {
		fields["text"] = message.Text
	}

	return fields
}
