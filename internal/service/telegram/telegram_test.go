package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

func TestParsePosition(t *testing.T) {
	index, ok := parsePosition(" 2 ", 3)
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	for _, in := range []string{"0", "4", "-1", "eins", ""} {
		_, ok = parsePosition(in, 3)
		assert.False(t, ok, in)
	}
}

func TestParseSubjectPayload(t *testing.T) {
	tests := []struct {
		payload string
		name    string
		isMain  *bool
		err     error
	}{
		{payload: "Mathematik", name: "Mathematik"},
		{payload: "Spanisch  haupt", name: "Spanisch", isMain: boolPtr(true)},
		{payload: "Deutsch Förderkurs Neben", name: "Deutsch Förderkurs", isMain: boolPtr(false)},
		{payload: "haupt", err: errInvalidKind},
		{payload: "  ", err: errFormIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			name, isMain, err := parseSubjectPayload(tt.payload)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.isMain, isMain)
		})
	}
}

func TestParseGradePayload(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	cmd, err := parseGradePayload("2 mü 1,5", now)
	require.NoError(t, err)
	assert.Equal(t, "2", cmd.subjectPosition)
	assert.Equal(t, domain.GradeTypeMU, cmd.grade.Type)
	assert.Equal(t, 1.5, cmd.grade.Value)
	assert.Equal(t, defaultWeight, cmd.grade.Weight)
	assert.Equal(t, now, cmd.grade.Date)
	assert.Empty(t, cmd.grade.Description)

	cmd, err = parseGradePayload("1 SA 2 2 Kapitel 4", now)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cmd.grade.Weight)
	assert.Equal(t, "Kapitel 4", cmd.grade.Description)

	cmd, err = parseGradePayload("1 Ex 3 Vokabeln", now)
	require.NoError(t, err)
	assert.Equal(t, defaultWeight, cmd.grade.Weight)
	assert.Equal(t, "Vokabeln", cmd.grade.Description)

	_, err = parseGradePayload("1 SA", now)
	assert.ErrorIs(t, err, errFormIgnored)
	_, err = parseGradePayload("1 Test 2", now)
	assert.ErrorIs(t, err, errInvalidType)
	_, err = parseGradePayload("1 SA gut", now)
	assert.ErrorIs(t, err, errInvalidValue)

	cmd, err = parseGradePayload("1 Ex 2 inf", now)
	require.NoError(t, err)
	assert.Equal(t, defaultWeight, cmd.grade.Weight)
	assert.Equal(t, "inf", cmd.grade.Description)
}

func TestParseNumber(t *testing.T) {
	value, err := parseNumber(" 2,5 ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, value)

	for _, in := range []string{"inf", "-Inf", "+infinity", "NaN", "1e400"} {
		_, err = parseNumber(in)
		assert.ErrorIs(t, err, errInvalidValue, in)
	}
}

func TestParseGoalPayload(t *testing.T) {
	cmd, err := parseGoalPayload("1 2,0 31.07.2025 Bessere Note in Mathe")
	require.NoError(t, err)
	assert.Equal(t, "1", cmd.subjectPosition)
	assert.Equal(t, 2.0, cmd.targetGrade)
	assert.Equal(t, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), cmd.targetDate)
	assert.Equal(t, "Bessere Note in Mathe", cmd.title)

	_, err = parseGoalPayload("1 2 2025-07-31 Titel")
	assert.ErrorIs(t, err, errFormIgnored)
	_, err = parseGoalPayload("1 2 31.07.2025")
	assert.ErrorIs(t, err, errFormIgnored)
}

func testSubjects() []domain.Subject {
	return []domain.Subject{
		{
			ID:            "a",
			Name:          "Mathe_Plus",
			IsMainSubject: true,
			Grades: []domain.Grade{
				{Type: domain.GradeTypeSA, Value: 2, Weight: 2, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
				{Type: domain.GradeTypeEx, Value: 3, Weight: 1, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		{ID: "b", Name: "Musik"},
	}
}

func TestFormatSubjects(t *testing.T) {
	assert.Equal(t,
		"*Deine Fächer:*\n"+
			"1. *Mathe\\_Plus* (Hauptfach): 2.33 (gut), 2 Noten\n"+
			"2. *Musik* (Nebenfach): keine Noten\n",
		formatSubjects(testSubjects()),
	)
}

func TestFormatGrades(t *testing.T) {
	assert.Equal(t,
		"*Mathe\\_Plus* (Hauptfach)\n"+
			"1. Schulaufgaben: 2.00 ×2 am 10.01.2024\n"+
			"2. Extemporale: 3.00 am 01.02.2024\n"+
			"Fachschnitt: *2.33*",
		formatGrades(testSubjects()[0]),
	)
}

func TestFormatSummary(t *testing.T) {
	message := formatSummary(grading.Summarize(testSubjects()))
	assert.Contains(t, message, "*Gesamtschnitt: 2.33 (gut)*")
	assert.Contains(t, message, "Hauptfächer: 2.33")
	assert.NotContains(t, message, "Nebenfächer")
	assert.Contains(t, message, "2 Noten in 1 Fächern")
	assert.Contains(t, message, "↘ Mathe\\_Plus: 2.33")
}

func TestFormatGoals(t *testing.T) {
	current := 2.5
	statuses := []domain.GoalStatus{
		{
			Goal:         &domain.Goal{Title: "Zweier", TargetGrade: 2, TargetDate: time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)},
			SubjectName:  "Deutsch",
			CurrentGrade: &current,
			Progress:     87.5,
			DaysLeft:     12,
		},
		{
			Goal:        &domain.Goal{Title: "Einser", TargetGrade: 1, TargetDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			SubjectName: "Kunst",
			DaysLeft:    -3,
		},
	}

	assert.Equal(t,
		"*Deine Ziele:*\n"+
			"1. *Zweier* (Deutsch): Ziel 2.00 bis 31.07.2024\n"+
			"   aktuell 2.50, 88%, noch 12 Tage\n"+
			"2. *Einser* (Kunst): Ziel 1.00 bis 01.05.2024\n"+
			"   noch keine Noten, 0%, abgelaufen",
		formatGoals(statuses),
	)
}

func TestFormatAchievements(t *testing.T) {
	message := formatAchievements([]domain.Achievement{
		{Title: "Erste Note! 📝", Description: "Deine erste Note eingetragen", Progress: 1, MaxProgress: 1, Unlocked: true},
		{Title: "Notensammler 📚", Description: "25 Noten eingetragen", Progress: 4, MaxProgress: 25},
	})

	assert.Equal(t,
		"*Erfolge: 1 von 2*\n"+
			"✅ Erste Note! 📝 – Deine erste Note eingetragen (1/1)\n"+
			"🔒 Notensammler 📚 – 25 Noten eingetragen (4/25)",
		message,
	)
}
