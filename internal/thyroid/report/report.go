// Package report renders a single prediction as a printable PDF.
package report

import (
	"bytes"
	"fmt"
	"time"

	"thyrocheck/internal/models"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "02 Jan 2006 15:04"

func Render(p models.ThyroidPrediction, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := build(p, generatedAt).Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// build lays out the report. Every string passes through the cp1252
// translator since the core fonts cannot encode UTF-8.
func build(p models.ThyroidPrediction, generatedAt time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(fmt.Sprintf("Thyroid prediction #%d", p.PredictionID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("ThyroCheck - Thyroid Screening Report"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, tr("Generated "+generatedAt.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, "Patient")
	detail(pdf, tr, "Name", p.Name)
	detail(pdf, tr, "Age", fmt.Sprintf("%d", p.Age))
	detail(pdf, tr, "Gender", p.Gender)
	pdf.Ln(4)

	section(pdf, tr, "Lab values")
	detail(pdf, tr, "TSH", fmt.Sprintf("%.3f", p.TSH))
	detail(pdf, tr, "T3", fmt.Sprintf("%.3f", p.T3))
	detail(pdf, tr, "T4", fmt.Sprintf("%.3f", p.T4))
	detail(pdf, tr, "Symptoms", p.Symptom)
	pdf.Ln(4)

	section(pdf, tr, "Result")
	pdf.SetFont("Arial", "B", 12)
	if p.Result == models.LabelMalignant {
		pdf.SetTextColor(178, 34, 34)
	} else {
		pdf.SetTextColor(34, 139, 34)
	}
	pdf.CellFormat(45, 10, tr("Prediction"), "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, tr(p.Result), "1", 1, "", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	detail(pdf, tr, "Predicted at", p.PredictedAt.Format(dateLayout))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, tr("This report is produced by a statistical model and is not a diagnosis. "+
		"Results must be reviewed by the treating physician."), "", "L", false)

	return pdf
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, tr(title), "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func detail(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(45, 10, tr(label), "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, tr(value), "1", 1, "", false, 0, "")
}
