package grading

import (
	"sort"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type TrendDirection string

const (
	TrendStable    TrendDirection = "stable"
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
)

const trendThreshold = 0.3

// Trend compares the plain mean of the older half of the grades with the newer
// half. Lower grades are better, so a falling mean is an improvement.
func Trend(subject domain.Subject) TrendDirection {
	if len(subject.Grades) < 2 {
		return TrendStable
	}

	older, newer := SplitByDate(subject.Grades)
	olderMean, newerMean := mean(older), mean(newer)

	switch {
	case newerMean < olderMean-trendThreshold:
		return TrendImproving
	case newerMean > olderMean+trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// SplitByDate sorts a copy of grades by date and splits it at len/2. The newer
// half gets the extra grade when the count is odd.
func SplitByDate(grades []domain.Grade) (older, newer []domain.Grade) {
	sorted := make([]domain.Grade, len(grades))
	copy(sorted, grades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	middle := len(sorted) / 2
	return sorted[:middle], sorted[middle:]
}

func mean(grades []domain.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}

	var total float64
	for _, grade := range grades {
		total += grade.Value
	}
	return total / float64(len(grades))
}

// Mean is the unweighted mean of the grade values, 0 for no grades.
func Mean(grades []domain.Grade) float64 {
	return mean(grades)
}
