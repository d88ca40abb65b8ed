package domain

import (
	"strings"
	"time"
)

type GradeType string

const (
	GradeTypeSA GradeType = "SA"
	GradeTypeEx GradeType = "Ex"
	GradeTypeMU GradeType = "MÜ"
	GradeTypeM  GradeType = "M"
	GradeTypeE  GradeType = "E"
)

// GradeTypes lists the grade types in the order they are shown to students.
var GradeTypes = []GradeType{
	GradeTypeSA,
	GradeTypeEx,
	GradeTypeMU,
	GradeTypeM,
	GradeTypeE,
}

var gradeTypeLabels = map[GradeType]string{
	GradeTypeSA: "Schulaufgaben",
	GradeTypeEx: "Extemporale",
	GradeTypeMU: "Mündlich",
	GradeTypeM:  "Mitarbeit",
	GradeTypeE:  "Ergebnisse",
}

// ParseGradeType accepts the canonical codes in any letter case. MU and MUE are
// accepted as ASCII spellings of MÜ.
func ParseGradeType(s string) (GradeType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SA":
		return GradeTypeSA, true
	case "EX":
		return GradeTypeEx, true
	case "MÜ", "MU", "MUE":
		return GradeTypeMU, true
	case "M":
		return GradeTypeM, true
	case "E":
		return GradeTypeE, true
	}

	return "", false
}

func (t GradeType) Valid() bool {
	_, ok := gradeTypeLabels[t]
	return ok
}

// Label returns the German name of the grade type, e.g. "Schulaufgaben" for SA.
func (t GradeType) Label() string {
	if label, ok := gradeTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// BavarianGrades are the grade values a student can enter.
var BavarianGrades = []float64{1, 2, 3, 4, 5, 6}

type Grade struct {
	ID          string
	Type        GradeType
	Value       float64
	Weight      float64
	Description *string
	Date        time.Time
}

func (g Grade) DescriptionOr(fallback string) string {
	if g.Description == nil || *g.Description == "" {
		return fallback
	}
	return *g.Description
}
