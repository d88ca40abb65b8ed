package achievements

import (
	"sort"
	"strings"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

type definition struct {
	id          domain.AchievementID
	title       string
	description string
	maxProgress int
	progress    func(in input) int
}

// input is everything an achievement can be measured on.
type input struct {
	subjects     []domain.Subject
	grades       []domain.Grade
	sessionCount int
}

const (
	excellentAverage     = 1.5
	improvementStep      = 0.5
	improvementMinGrades = 10
	perfectGrade         = 1.0
)

var definitions = []definition{
	{
		id:          domain.AchievementFirstGrade,
		title:       "Erste Note! 📝",
		description: "Deine erste Note eingetragen",
		maxProgress: 1,
		progress: func(in input) int {
			return boolProgress(len(in.grades) > 0)
		},
	},
	{
		id:          domain.AchievementExcellentStudent,
		title:       "Musterschüler 🌟",
		description: "Durchschnitt von 1.5 oder besser erreicht",
		maxProgress: 1,
		progress: func(in input) int {
			return boolProgress(len(in.grades) > 0 && grading.Mean(in.grades) <= excellentAverage)
		},
	},
	{
		id:          domain.AchievementGradeCollector,
		title:       "Notensammler 📚",
		description: "25 Noten eingetragen",
		maxProgress: 25,
		progress: func(in input) int {
			return len(in.grades)
		},
	},
	{
		id:          domain.AchievementImprovementMaster,
		title:       "Verbesserungsmeister 📈",
		description: "Durchschnitt um 0.5 Punkte verbessert",
		maxProgress: 1,
		progress: func(in input) int {
			if len(in.grades) < improvementMinGrades {
				return 0
			}
			older, newer := grading.SplitByDate(in.grades)
			return boolProgress(grading.Mean(older)-grading.Mean(newer) >= improvementStep)
		},
	},
	{
		id:          domain.AchievementConsistentStudent,
		title:       "Beständiger Schüler ⚡",
		description: "7 Tage in Folge Noten eingetragen",
		maxProgress: 7,
		progress: func(in input) int {
			return longestDayStreak(in.grades)
		},
	},
	{
		id:          domain.AchievementSpeedDemon,
		title:       "Blitzschnell ⚡",
		description: "5 Noten in einer Sitzung eingetragen",
		maxProgress: 5,
		progress: func(in input) int {
			return in.sessionCount
		},
	},
	{
		id:          domain.AchievementSubjectMaster,
		title:       "Fächermeister 🎯",
		description: "Alle Hauptfächer erfasst",
		maxProgress: len(domain.MainSubjects),
		progress: func(in input) int {
			return coveredMainSubjects(in.subjects)
		},
	},
	{
		id:          domain.AchievementPerfectionist,
		title:       "Perfektionist ✨",
		description: "Mindestens 3 Einsen erreicht",
		maxProgress: 3,
		progress: func(in input) int {
			count := 0
			for _, grade := range in.grades {
				if grade.Value <= perfectGrade {
					count++
				}
			}
			return count
		},
	},
}

func boolProgress(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// longestDayStreak is the longest run of consecutive calendar days with at
// least one grade.
func longestDayStreak(grades []domain.Grade) int {
	if len(grades) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(grades))
	seen := make(map[time.Time]struct{}, len(grades))
	for _, grade := range grades {
		year, month, day := grade.Date.Date()
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		days = append(days, date)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}

	return longest
}

func coveredMainSubjects(subjects []domain.Subject) int {
	count := 0
	for _, mainSubject := range domain.MainSubjects {
		for _, subject := range subjects {
			if strings.Contains(strings.ToLower(subject.Name), strings.ToLower(mainSubject)) {
				count++
				break
			}
		}
	}
	return count
}
