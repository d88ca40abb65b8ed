package telegram

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

const (
	dateLayout    = "02.01.2006"
	defaultWeight = 1.0
)

var (
	errFormIgnored  = errors.New("form ignored")
	errInvalidType  = errors.New("invalid grade type")
	errInvalidValue = errors.New("invalid number")
	errInvalidKind  = errors.New("invalid subject kind")
)

// parsePosition parses a 1-based list position and returns the index.
func parsePosition(s string, length int) (int, bool) {
	position, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || position < 1 || position > length {
		return 0, false
	}
	return position - 1, true
}

// parseNumber accepts both decimal separators, "2,5" and "2.5". Only finite
// numbers are accepted.
func parseNumber(s string) (float64, error) {
	value, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errInvalidValue
	}
	return value, nil
}

// parseSubjectPayload splits "Name [haupt|neben]". A nil kind means the kind was
// not given.
func parseSubjectPayload(payload string) (string, *bool, error) {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "", nil, errFormIgnored
	}

	var isMain *bool
	switch strings.ToLower(fields[len(fields)-1]) {
	case "haupt", "hauptfach":
		isMain = boolPtr(true)
	case "neben", "nebenfach":
		isMain = boolPtr(false)
	}

	if isMain != nil {
		fields = fields[:len(fields)-1]
		if len(fields) == 0 {
			return "", nil, errInvalidKind
		}
	}

	return strings.Join(fields, " "), isMain, nil
}

type gradeCommand struct {
	subjectPosition string
	grade           service.NewGrade
}

// parseGradePayload parses "FachNr Typ Note [Gewicht] [Beschreibung]". The
// weight is only taken when the fourth field is a number.
func parseGradePayload(payload string, now time.Time) (gradeCommand, error) {
	fields := strings.Fields(payload)
	if len(fields) < 3 {
		return gradeCommand{}, errFormIgnored
	}

	gradeType, ok := domain.ParseGradeType(fields[1])
	if !ok {
		return gradeCommand{}, errInvalidType
	}

	value, err := parseNumber(fields[2])
	if err != nil {
		return gradeCommand{}, err
	}

	cmd := gradeCommand{
		subjectPosition: fields[0],
		grade: service.NewGrade{
			Type:   gradeType,
			Value:  value,
			Weight: defaultWeight,
			Date:   now,
		},
	}

	rest := fields[3:]
	if len(rest) > 0 {
		if weight, err := parseNumber(rest[0]); err == nil {
			cmd.grade.Weight = weight
			rest = rest[1:]
		}
	}
	cmd.grade.Description = strings.Join(rest, " ")

	return cmd, nil
}

type goalCommand struct {
	subjectPosition string
	targetGrade     float64
	targetDate      time.Time
	title           string
}

// parseGoalPayload parses "FachNr Zielnote TT.MM.JJJJ Titel".
func parseGoalPayload(payload string) (goalCommand, error) {
	fields := strings.Fields(payload)
	if len(fields) < 4 {
		return goalCommand{}, errFormIgnored
	}

	targetGrade, err := parseNumber(fields[1])
	if err != nil {
		return goalCommand{}, err
	}

	targetDate, err := time.Parse(dateLayout, fields[2])
	if err != nil {
		return goalCommand{}, errFormIgnored
	}

	return goalCommand{
		subjectPosition: fields[0],
		targetGrade:     targetGrade,
		targetDate:      targetDate,
		title:           strings.Join(fields[3:], " "),
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}
