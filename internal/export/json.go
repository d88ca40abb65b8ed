package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

type jsonDocument struct {
	StudentName string        `json:"studentName"`
	ExportDate  string        `json:"exportDate"`
	OverallGPA  float64       `json:"overallGPA"`
	Subjects    []jsonSubject `json:"subjects"`
}

type jsonSubject struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	IsMainSubject   bool        `json:"isMainSubject"`
	Grades          []jsonGrade `json:"grades"`
	FinalGrade      *float64    `json:"finalGrade,omitempty"`
	CalculatedGrade float64     `json:"calculatedGrade"`
	FormattedGrade  string      `json:"formattedGrade"`
}

type jsonGrade struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	Weight      float64 `json:"weight"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

// JSON writes the document with the calculated grade of every subject.
func JSON(w io.Writer, doc Document) error {
	data := jsonDocument{
		StudentName: studentName(doc),
		ExportDate:  doc.CreatedAt.UTC().Format(time.RFC3339),
		OverallGPA:  grading.OverallAverage(doc.Subjects),
		Subjects:    make([]jsonSubject, 0, len(doc.Subjects)),
	}

	for _, subject := range doc.Subjects {
		subjectGrade := grading.SubjectGrade(subject)
		data.Subjects = append(data.Subjects, jsonSubject{
			ID:              subject.ID,
			Name:            subject.Name,
			IsMainSubject:   subject.IsMainSubject,
			Grades:          jsonGrades(subject.Grades),
			FinalGrade:      subject.FinalGrade,
			CalculatedGrade: subjectGrade,
			FormattedGrade:  grading.FormatGrade(subjectGrade),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoder.Encode: %w", err)
	}

	return nil
}

func jsonGrades(grades []domain.Grade) []jsonGrade {
	result := make([]jsonGrade, 0, len(grades))
	for _, grade := range grades {
		result = append(result, jsonGrade{
			ID:          grade.ID,
			Type:        string(grade.Type),
			Value:       grade.Value,
			Weight:      grade.Weight,
			Description: grade.Description,
			Date:        grade.Date.Format(isoDayLayout),
		})
	}
	return result
}
