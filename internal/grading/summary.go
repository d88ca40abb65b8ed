package grading

import (
	"sort"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type SubjectResult struct {
	Subject domain.Subject
	Grade   float64
	Class   ColorClass
	Trend   TrendDirection
}

// Summary aggregates the per-subject results of a student.
type Summary struct {
	Overall        float64
	MainSubjects   float64
	OtherSubjects  float64
	Best           *SubjectResult
	Worst          *SubjectResult
	TotalGrades    int
	GradedSubjects int
	// Results holds only subjects with grades, best grade first.
	Results []SubjectResult
}

func Summarize(subjects []domain.Subject) Summary {
	summary := Summary{
		Overall: OverallAverage(subjects),
		Results: make([]SubjectResult, 0, len(subjects)),
	}

	var mainTotal, otherTotal float64
	var mainCount, otherCount int
	for _, subject := range subjects {
		summary.TotalGrades += len(subject.Grades)
		if !subject.HasGrades() {
			continue
		}

		grade := SubjectGrade(subject)
		result := SubjectResult{
			Subject: subject,
			Grade:   grade,
			Class:   GradeColorClass(grade),
			Trend:   Trend(subject),
		}
		summary.Results = append(summary.Results, result)

		if subject.IsMainSubject {
			mainTotal += grade
			mainCount++
		} else {
			otherTotal += grade
			otherCount++
		}
	}

	summary.GradedSubjects = len(summary.Results)
	if mainCount > 0 {
		summary.MainSubjects = mainTotal / float64(mainCount)
	}
	if otherCount > 0 {
		summary.OtherSubjects = otherTotal / float64(otherCount)
	}

	if len(summary.Results) == 0 {
		return summary
	}

	best, worst := 0, 0
	for i, result := range summary.Results {
		if result.Grade < summary.Results[best].Grade {
			best = i
		}
		if result.Grade > summary.Results[worst].Grade {
			worst = i
		}
	}
	bestResult, worstResult := summary.Results[best], summary.Results[worst]
	summary.Best = &bestResult
	summary.Worst = &worstResult

	sort.SliceStable(summary.Results, func(i, j int) bool {
		return summary.Results[i].Grade < summary.Results[j].Grade
	})

	return summary
}
