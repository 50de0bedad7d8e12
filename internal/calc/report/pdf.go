package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"date"`
}

// pdfSymbols spells out characters that have no glyph in the cp1252
// core fonts.
var pdfSymbols = strings.NewReplacer(
	"π", "pi",
	"∛", "cbrt",
	"ρ", "rho",
	"≤", "<=",
	"≥", ">=",
	"−", "-",
)

// WritePDF renders a design report: the result table, any warnings and
// the step-by-step derivation.
func WritePDF(w io.Writer, meta Meta, in tank.Input, out tank.Output) error {
	return buildPDF(meta, in, out).Output(w)
}

func buildPDF(meta Meta, in tank.Input, out tank.Output) *gofpdf.Fpdf {
	if meta.Title == "" {
		meta.Title = "Storage Tank Design Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(meta.Date)
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string {
		return cp1252(pdfSymbols.Replace(s))
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 7, header[0], "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, header[1], "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, header[2], "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range designTable(in, out) {
		pdf.CellFormat(80, 6, tr(r.Parameter), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, tr(r.text()), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, tr(r.Unit), "1", 1, "L", false, 0, "")
	}

	if len(out.Warnings) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Warnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, warning := range out.Warnings {
			pdf.MultiCell(0, 5, tr(warning), "", "L", false)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Derivation")
	pdf.Ln(8)
	pdf.SetFont("Courier", "", 9)
	for _, step := range []string{out.Derivation.Volume, out.Derivation.Geometry, out.Derivation.Pressure, out.Derivation.Thickness} {
		pdf.MultiCell(0, 4.5, tr(step), "", "L", false)
		pdf.Ln(2)
	}

	if meta.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
	}

	return pdf
}
