package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

var trendSymbols = map[grading.TrendDirection]string{
	grading.TrendImproving: "↗",
	grading.TrendDeclining: "↘",
	grading.TrendStable:    "→",
}

func subjectKind(isMain bool) string {
	if isMain {
		return "Hauptfach"
	}
	return "Nebenfach"
}

func formatGradeWithLabel(value float64) string {
	return fmt.Sprintf("%s (%s)", grading.FormatGrade(value), grading.GradeColorClass(value).Label())
}

func formatSubjects(subjects []domain.Subject) string {
	var b strings.Builder
	b.WriteString("*Deine Fächer:*\n")
	for i, subject := range subjects {
		fmt.Fprintf(&b, "%d. *%s* (%s): ", i+1, config.Escape(subject.Name), subjectKind(subject.IsMainSubject))
		if !subject.HasGrades() {
			b.WriteString("keine Noten\n")
			continue
		}
		fmt.Fprintf(&b, "%s, %d Noten\n", formatGradeWithLabel(grading.SubjectGrade(subject)), len(subject.Grades))
	}
	return b.String()
}

func formatGrades(subject domain.Subject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* (%s)\n", config.Escape(subject.Name), subjectKind(subject.IsMainSubject))
	for i, grade := range subject.Grades {
		fmt.Fprintf(&b, "%d. %s: %s", i+1, grade.Type.Label(), grading.FormatGrade(grade.Value))
		if grade.Weight != 1 {
			fmt.Fprintf(&b, " ×%s", strconv.FormatFloat(grade.Weight, 'f', -1, 64))
		}
		fmt.Fprintf(&b, " am %s", grade.Date.Format(dateLayout))
		if description := grade.DescriptionOr(""); description != "" {
			fmt.Fprintf(&b, " – %s", config.Escape(description))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Fachschnitt: *%s*", grading.FormatGrade(grading.SubjectGrade(subject)))
	return b.String()
}

func formatSummary(summary grading.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Gesamtschnitt: %s*\n", formatGradeWithLabel(summary.Overall))
	if summary.MainSubjects != 0 {
		fmt.Fprintf(&b, "Hauptfächer: %s\n", grading.FormatGrade(summary.MainSubjects))
	}
	if summary.OtherSubjects != 0 {
		fmt.Fprintf(&b, "Nebenfächer: %s\n", grading.FormatGrade(summary.OtherSubjects))
	}
	fmt.Fprintf(&b, "%d Noten in %d Fächern\n", summary.TotalGrades, summary.GradedSubjects)
	if summary.Best != nil && summary.Worst != nil && summary.GradedSubjects > 1 {
		fmt.Fprintf(&b, "Bestes Fach: %s (%s)\n", config.Escape(summary.Best.Subject.Name), grading.FormatGrade(summary.Best.Grade))
		fmt.Fprintf(&b, "Schwächstes Fach: %s (%s)\n", config.Escape(summary.Worst.Subject.Name), grading.FormatGrade(summary.Worst.Grade))
	}
	b.WriteString("\n")
	for _, result := range summary.Results {
		fmt.Fprintf(&b, "%s %s: %s\n", trendSymbols[result.Trend], config.Escape(result.Subject.Name), grading.FormatGrade(result.Grade))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatGoals(statuses []domain.GoalStatus) string {
	var b strings.Builder
	b.WriteString("*Deine Ziele:*\n")
	for i, status := range statuses {
		fmt.Fprintf(&b, "%d. *%s* (%s): Ziel %s bis %s\n",
			i+1,
			config.Escape(status.Goal.Title),
			config.Escape(status.SubjectName),
			grading.FormatGrade(status.Goal.TargetGrade),
			status.Goal.TargetDate.Format(dateLayout),
		)

		current := "noch keine Noten"
		if status.CurrentGrade != nil {
			current = "aktuell " + grading.FormatGrade(*status.CurrentGrade)
		}

		switch {
		case status.Achieved:
			fmt.Fprintf(&b, "   %s, erreicht ✅\n", current)
		case status.DaysLeft < 0:
			fmt.Fprintf(&b, "   %s, %.0f%%, abgelaufen\n", current, status.Progress)
		default:
			fmt.Fprintf(&b, "   %s, %.0f%%, noch %d Tage\n", current, status.Progress, status.DaysLeft)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatAchievements(achievements []domain.Achievement) string {
	var b strings.Builder
	unlocked := 0
	for _, achievement := range achievements {
		if achievement.Unlocked {
			unlocked++
		}
	}

	fmt.Fprintf(&b, "*Erfolge: %d von %d*\n", unlocked, len(achievements))
	for _, achievement := range achievements {
		mark := "🔒"
		if achievement.Unlocked {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s – %s (%d/%d)\n",
			mark, achievement.Title, achievement.Description, achievement.Progress, achievement.MaxProgress)
	}
	return strings.TrimRight(b.String(), "\n")
}
