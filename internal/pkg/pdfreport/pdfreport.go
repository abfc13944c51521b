// Package pdfreport renders course attendance reports as PDF documents.
package pdfreport

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/drivera/aulanet/internal/app/services"
)

const generatedAtLayout = "02/01/2006 15:04"

// Render produces the printable attendance report for one course. The
// aggregate is rendered as-is; all filtering and pluralization happened
// upstream.
func Render(report *services.CourseReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	title := fmt.Sprintf("Reporte de asistencia: %s (%s)", report.Course.Name, report.Course.Code)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Generado: "+report.GeneratedAt.Format(generatedAtLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(report.Students) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, tr("El curso no tiene estudiantes."), "", 1, "L", false, 0, "")
	}

	for _, summary := range report.Students {
		pdf.SetFont("Helvetica", "B", 12)
		name := summary.Student.Surnames + ", " + summary.Student.Names
		pdf.CellFormat(0, 8, tr(name), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		if len(summary.Lines) == 0 {
			pdf.CellFormat(0, 6, tr("Sin asistencias registradas"), "", 1, "L", false, 0, "")
		}
		for _, line := range summary.Lines {
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 10)
		total := fmt.Sprintf("Total de horas: %d", summary.TotalHours)
		pdf.CellFormat(0, 6, tr(total), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
