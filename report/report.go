// Package report renders solved beam results to spreadsheet and PDF
// documents for downstream review.
package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/structlab/beamfem/beam"
)

// fields sampled into the diagram sheet, in column order after x
var fields = []beam.Field{beam.FieldDeflection, beam.FieldAngle, beam.FieldMoment, beam.FieldShear}

// Workbook builds a spreadsheet with a summary sheet and a diagram
// sheet sampling every result field at n evenly spaced locations.
func Workbook(b *beam.Beam, n int) (*excelize.File, error) {
	if n < 2 {
		return nil, fmt.Errorf("report: need at least 2 sample points, got %d", n)
	}
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), "Summary"); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, b); err != nil {
		return nil, err
	}
	if err := writeDiagramSheet(f, b, n); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSummarySheet(f *excelize.File, b *beam.Beam) error {
	rows := [][]interface{}{
		{"Length", b.Length()},
		{"Young's modulus", b.E()},
		{"Area moment of inertia", b.Ixx()},
		{"Loads", len(b.Loads())},
		{"Reactions", len(b.Reactions())},
		{},
		{"Reaction", "Location", "Force", "Moment"},
	}
	for _, r := range b.Reactions() {
		force, _ := r.Force()
		moment, _ := r.Moment()
		rows = append(rows, []interface{}{r.Name(), r.Location(), force, moment})
	}
	return writeRows(f, "Summary", rows)
}

func writeDiagramSheet(f *excelize.File, b *beam.Beam, n int) error {
	if _, err := f.NewSheet("Diagrams"); err != nil {
		return err
	}
	rows := [][]interface{}{{"x", "deflection", "angle", "moment", "shear"}}
	var xs []float64
	cols := make([][]float64, len(fields))
	for i, field := range fields {
		x, ys, err := b.Diagram(field, n)
		if err != nil {
			return err
		}
		xs = x
		cols[i] = ys
	}
	for i, x := range xs {
		row := []interface{}{x}
		for _, ys := range cols {
			row = append(row, ys[i])
		}
		rows = append(rows, row)
	}
	return writeRows(f, "Diagrams", rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteWorkbook writes the spreadsheet produced by Workbook to w.
func WriteWorkbook(w io.Writer, b *beam.Beam, n int) error {
	f, err := Workbook(b, n)
	if err != nil {
		return err
	}
	return f.Write(w)
}

// PDF builds a one-page summary document titled title.
func PDF(b *beam.Beam, title string) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Beam parameters")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Length: %v", b.Length()),
		fmt.Sprintf("Young's modulus: %v", b.E()),
		fmt.Sprintf("Area moment of inertia: %v", b.Ixx()),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Reactions")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range b.Reactions() {
		force, _ := r.Force()
		moment, _ := r.Moment()
		pdf.Cell(0, 6, fmt.Sprintf("%s at %v: force %.6g, moment %.6g", r.Name(), r.Location(), force, moment))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Loads")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	for _, ld := range b.Loads() {
		pdf.MultiCell(0, 6, fmt.Sprint(ld), "", "L", false)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("report: %v", pdf.Error())
	}
	return pdf, nil
}

// WritePDF writes the document produced by PDF to w.
func WritePDF(w io.Writer, b *beam.Beam, title string) error {
	pdf, err := PDF(b, title)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}
