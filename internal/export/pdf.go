package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 7.0
)

// widths of the Typ, Note, Gewicht and Datum columns in mm, Beschreibung takes the rest
var pdfColumns = [...]float64{30, 20, 20, 25}

// PDF writes the same report as HTML onto A4 pages.
func PDF(w io.Writer, doc Document) error {
	r := newReport(doc)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.CreatedAt)
	pdf.SetModificationDate(doc.CreatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("Notenübersicht %s", r.StudentName), true)
	pdf.SetCreator(appName, true)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Seite %d von {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, tr(r.AppName), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 13)
	pdf.CellFormat(0, 8, tr("Notenübersicht für "+r.StudentName), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, 6, tr("Erstellt am "+r.CreatedAt), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if r.HasOverall {
		pdf.SetFillColor(239, 246, 255)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(contentWidth/2, 10, "Gesamtdurchschnitt", "1", 0, "L", true, 0, "")
		pdf.SetTextColor(r.OverallClass.RGB())
		pdf.CellFormat(contentWidth/2, 10, r.Overall, "1", 1, "R", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	descriptionWidth := contentWidth
	for _, width := range pdfColumns {
		descriptionWidth -= width
	}

	for _, subject := range r.Subjects {
		pdf.SetFillColor(243, 244, 246)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(contentWidth-30, 9, tr(fmt.Sprintf("%s (%s)", subject.Name, subject.Kind)), "", 0, "L", true, 0, "")
		pdf.SetTextColor(subject.Class.RGB())
		pdf.CellFormat(30, 9, subject.Grade, "", 1, "R", true, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFillColor(59, 130, 246)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont(pdfFont, "B", 10)
		for i, title := range []string{"Typ", "Note", "Gewicht", "Datum"} {
			pdf.CellFormat(pdfColumns[i], pdfLineHeight, title, "1", 0, "L", true, 0, "")
		}
		pdf.CellFormat(descriptionWidth, pdfLineHeight, "Beschreibung", "1", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont(pdfFont, "", 10)
		for _, grade := range subject.Grades {
			pdf.CellFormat(pdfColumns[0], pdfLineHeight, tr(grade.Type), "1", 0, "L", false, 0, "")
			pdf.SetTextColor(grade.Class.RGB())
			pdf.CellFormat(pdfColumns[1], pdfLineHeight, grade.Value, "1", 0, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(pdfColumns[2], pdfLineHeight, grade.Weight, "1", 0, "L", false, 0, "")
			pdf.CellFormat(pdfColumns[3], pdfLineHeight, grade.Date, "1", 0, "L", false, 0, "")
			pdf.CellFormat(descriptionWidth, pdfLineHeight, tr(grade.Description), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf.Output: %w", err)
	}

	return nil
}
