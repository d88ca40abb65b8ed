// Package export renders a student's grades as JSON, CSV, HTML or PDF files.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

var Formats = []Format{FormatJSON, FormatCSV, FormatHTML, FormatPDF}

func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ierrors.ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Document is everything an export shows. CreatedAt is part of the input so
// equal documents render to equal bytes.
type Document struct {
	StudentName string
	CreatedAt   time.Time
	Subjects    []domain.Subject
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	dateLayout   = "02.01.2006"
	isoDayLayout = "2006-01-02"
	appName      = "Bayernnotenmeister Pro"
)

// Render writes doc in the given format into a File.
func Render(format Format, doc Document) (*File, error) {
	var (
		buf bytes.Buffer
		err error
	)

	switch format {
	case FormatJSON:
		err = JSON(&buf, doc)
	case FormatCSV:
		err = CSV(&buf, doc)
	case FormatHTML:
		err = HTML(&buf, doc)
	case FormatPDF:
		err = PDF(&buf, doc)
	default:
		return nil, fmt.Errorf("%w: %q", ierrors.ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	return &File{
		Name:        FileName(doc.StudentName, format, doc.CreatedAt),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

var fileNameReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
)

// FileName builds notenuebersicht_<student>_<YYYY-MM-DD>.<format> with an
// ASCII-only, lower case student part.
func FileName(studentName string, format Format, date time.Time) string {
	student := strings.ToLower(fileNameReplacer.Replace(strings.TrimSpace(studentName)))
	student = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		}
		return -1
	}, student)
	if student == "" {
		student = "schueler"
	}

	return fmt.Sprintf("notenuebersicht_%s_%s.%s", student, date.Format(isoDayLayout), format)
}

func studentName(doc Document) string {
	if doc.StudentName == "" {
		return domain.DefaultStudentName
	}
	return doc.StudentName
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func subjectKind(subject domain.Subject) string {
	if subject.IsMainSubject {
		return "Hauptfach"
	}
	return "Nebenfach"
}

func gradedSubjects(subjects []domain.Subject) []domain.Subject {
	graded := make([]domain.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if subject.HasGrades() {
			graded = append(graded, subject)
		}
	}
	return graded
}
