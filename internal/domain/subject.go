package domain

import "strings"

// MainSubjects are the subjects that are main subjects at Bavarian schools.
var MainSubjects = []string{
	"Deutsch",
	"Mathematik",
	"Englisch",
	"Französisch",
	"Latein",
}

type Subject struct {
	ID            string
	Name          string
	IsMainSubject bool
	Grades        []Grade
	// FinalGrade is a stored override used only for persistence.
	FinalGrade *float64
}

func (s Subject) HasGrades() bool {
	return len(s.Grades) > 0
}

// IsWellKnownMainSubject reports whether name contains one of MainSubjects,
// ignoring letter case.
func IsWellKnownMainSubject(name string) bool {
	lowerName := strings.ToLower(name)
	for _, mainSubject := range MainSubjects {
		if strings.Contains(lowerName, strings.ToLower(mainSubject)) {
			return true
		}
	}
	return false
}
