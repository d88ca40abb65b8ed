// Package grading computes subject and overall grades with the Bavarian formula.
//
// Every function is a pure function of its arguments: inputs are never mutated
// and Subject.FinalGrade is never read.
package grading

import "github.com/ilyadubrovsky/notenmeister/internal/domain"

// WeightedAverage returns sum(value*weight)/sum(weight), or 0 for an empty slice
// and for a zero weight sum.
func WeightedAverage(grades []domain.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}

	var weightedSum, totalWeight float64
	for _, grade := range grades {
		weightedSum += grade.Value * grade.Weight
		totalWeight += grade.Weight
	}

	if totalWeight == 0 {
		return 0
	}

	return weightedSum / totalWeight
}

// SubjectGrade returns the final grade of a subject, 0 if it has no grades.
//
// Main subjects: (SA average * 2 + average of all other grades) / 3.
// Other subjects: (SA average + average of all other grades) / 2.
// A missing group falls back to the group that exists.
func SubjectGrade(subject domain.Subject) float64 {
	if len(subject.Grades) == 0 {
		return 0
	}

	saGrades, otherGrades := partitionSA(subject.Grades)

	if len(saGrades) == 0 {
		return WeightedAverage(otherGrades)
	}

	saAverage := WeightedAverage(saGrades)

	if subject.IsMainSubject {
		otherAverage := saAverage
		if len(otherGrades) > 0 {
			otherAverage = WeightedAverage(otherGrades)
		}
		return (saAverage*2 + otherAverage) / 3
	}

	if len(otherGrades) == 0 {
		return saAverage
	}

	return (saAverage + WeightedAverage(otherGrades)) / 2
}

// OverallAverage is the unweighted mean of SubjectGrade over the subjects that
// have at least one grade.
func OverallAverage(subjects []domain.Subject) float64 {
	var total float64
	count := 0
	for _, subject := range subjects {
		if !subject.HasGrades() {
			continue
		}
		total += SubjectGrade(subject)
		count++
	}

	if count == 0 {
		return 0
	}

	return total / float64(count)
}

func partitionSA(grades []domain.Grade) (saGrades, otherGrades []domain.Grade) {
	saGrades = make([]domain.Grade, 0, len(grades))
	otherGrades = make([]domain.Grade, 0, len(grades))
	for _, grade := range grades {
		if grade.Type == domain.GradeTypeSA {
			saGrades = append(saGrades, grade)
			continue
		}
		otherGrades = append(otherGrades, grade)
	}
	return saGrades, otherGrades
}
