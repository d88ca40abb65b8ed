package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

var csvHeader = []string{"Fach", "Typ", "Note", "Gewicht", "Datum", "Beschreibung", "Fachnote"}

// CSV writes one row per grade. Every row repeats the subject grade.
func CSV(w io.Writer, doc Document) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writer.Write (header): %w", err)
	}

	for _, subject := range doc.Subjects {
		subjectGrade := grading.FormatGrade(grading.SubjectGrade(subject))
		for _, grade := range subject.Grades {
			row := []string{
				subject.Name,
				grade.Type.Label(),
				formatNumber(grade.Value),
				formatNumber(grade.Weight),
				grade.Date.Format(dateLayout),
				grade.DescriptionOr(""),
				subjectGrade,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writer.Write: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush: %w", err)
	}

	return nil
}
