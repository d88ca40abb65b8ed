package export

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

//go:embed templates/report.html
var reportTemplate string

var reportHTML = template.Must(template.New("report").Parse(reportTemplate))

// report is the view shared by the HTML and PDF writers.
type report struct {
	AppName      string
	StudentName  string
	CreatedAt    string
	HasOverall   bool
	Overall      string
	OverallClass grading.ColorClass
	Subjects     []reportSubject
}

type reportSubject struct {
	Name   string
	Kind   string
	Grade  string
	Class  grading.ColorClass
	Value  float64
	Grades []reportGrade
}

type reportGrade struct {
	Type        string
	Value       string
	Class       grading.ColorClass
	Weight      string
	Date        string
	Description string
}

func newReport(doc Document) report {
	graded := gradedSubjects(doc.Subjects)
	overall := grading.OverallAverage(graded)

	r := report{
		AppName:      appName,
		StudentName:  studentName(doc),
		CreatedAt:    doc.CreatedAt.Format(dateLayout),
		HasOverall:   len(graded) > 0,
		Overall:      grading.FormatGrade(overall),
		OverallClass: grading.GradeColorClass(overall),
		Subjects:     make([]reportSubject, 0, len(graded)),
	}

	for _, subject := range graded {
		value := grading.SubjectGrade(subject)
		r.Subjects = append(r.Subjects, reportSubject{
			Name:   subject.Name,
			Kind:   subjectKind(subject),
			Grade:  grading.FormatGrade(value),
			Class:  grading.GradeColorClass(value),
			Value:  value,
			Grades: reportGrades(subject.Grades),
		})
	}

	return r
}

func reportGrades(grades []domain.Grade) []reportGrade {
	result := make([]reportGrade, 0, len(grades))
	for _, grade := range grades {
		result = append(result, reportGrade{
			Type:        grade.Type.Label(),
			Value:       formatNumber(grade.Value),
			Class:       grading.GradeColorClass(grade.Value),
			Weight:      formatNumber(grade.Weight),
			Date:        grade.Date.Format(dateLayout),
			Description: grade.DescriptionOr("-"),
		})
	}
	return result
}

// HTML writes a printable report of all subjects that have grades.
func HTML(w io.Writer, doc Document) error {
	if err := reportHTML.Execute(w, newReport(doc)); err != nil {
		return fmt.Errorf("reportHTML.Execute: %w", err)
	}
	return nil
}
