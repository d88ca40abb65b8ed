package api

import (
	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	"github.com/ilyadubrovsky/notenmeister/internal/grading"
)

const dayLayout = "2006-01-02"

type subjectsResponse struct {
	Subjects []subjectDTO `json:"subjects"`
}

type subjectDTO struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	IsMainSubject   bool       `json:"isMainSubject"`
	FinalGrade      *float64   `json:"finalGrade,omitempty"`
	Grades          []gradeDTO `json:"grades"`
	CalculatedGrade float64    `json:"calculatedGrade"`
	FormattedGrade  string     `json:"formattedGrade"`
}

type gradeDTO struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	Weight      float64 `json:"weight"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

type subjectResultDTO struct {
	SubjectID      string  `json:"subjectId"`
	Name           string  `json:"name"`
	Grade          float64 `json:"grade"`
	FormattedGrade string  `json:"formattedGrade"`
	ColorClass     string  `json:"colorClass"`
	Trend          string  `json:"trend"`
}

type summaryDTO struct {
	Overall        float64            `json:"overall"`
	FormattedGrade string             `json:"formattedGrade"`
	MainSubjects   float64            `json:"mainSubjects"`
	OtherSubjects  float64            `json:"otherSubjects"`
	Best           *subjectResultDTO  `json:"best"`
	Worst          *subjectResultDTO  `json:"worst"`
	TotalGrades    int                `json:"totalGrades"`
	GradedSubjects int                `json:"gradedSubjects"`
	Results        []subjectResultDTO `json:"results"`
}

func newSubjectDTOs(subjects []domain.Subject) []subjectDTO {
	dtos := make([]subjectDTO, 0, len(subjects))
	for _, subject := range subjects {
		grade := grading.SubjectGrade(subject)
		dto := subjectDTO{
			ID:              subject.ID,
			Name:            subject.Name,
			IsMainSubject:   subject.IsMainSubject,
			FinalGrade:      subject.FinalGrade,
			Grades:          make([]gradeDTO, 0, len(subject.Grades)),
			CalculatedGrade: grade,
			FormattedGrade:  grading.FormatGrade(grade),
		}
		for _, g := range subject.Grades {
			dto.Grades = append(dto.Grades, gradeDTO{
				ID:          g.ID,
				Type:        string(g.Type),
				Value:       g.Value,
				Weight:      g.Weight,
				Description: g.Description,
				Date:        g.Date.Format(dayLayout),
			})
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func newSubjectResultDTO(result *grading.SubjectResult) *subjectResultDTO {
	if result == nil {
		return nil
	}
	return &subjectResultDTO{
		SubjectID:      result.Subject.ID,
		Name:           result.Subject.Name,
		Grade:          result.Grade,
		FormattedGrade: grading.FormatGrade(result.Grade),
		ColorClass:     result.Class.String(),
		Trend:          string(result.Trend),
	}
}

func newSummaryDTO(summary grading.Summary) summaryDTO {
	dto := summaryDTO{
		Overall:        summary.Overall,
		FormattedGrade: grading.FormatGrade(summary.Overall),
		MainSubjects:   summary.MainSubjects,
		OtherSubjects:  summary.OtherSubjects,
		Best:           newSubjectResultDTO(summary.Best),
		Worst:          newSubjectResultDTO(summary.Worst),
		TotalGrades:    summary.TotalGrades,
		GradedSubjects: summary.GradedSubjects,
		Results:        make([]subjectResultDTO, 0, len(summary.Results)),
	}
	for i := range summary.Results {
		dto.Results = append(dto.Results, *newSubjectResultDTO(&summary.Results[i]))
	}
	return dto
}
