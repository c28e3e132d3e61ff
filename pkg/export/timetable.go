// Package export renders generated timetables into downloadable documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/opt-telecom/horarios-api/internal/models"
	"github.com/opt-telecom/horarios-api/internal/timetable"
)

var timetableHeaders = []string{
	"Dia", "Inicio", "Fin", "Materia", "Seccion", "Tipo", "Profesor", "Aula", "Programa",
}

func timetableRows(entries []models.TimetableEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Day,
			shortTime(e.StartTime),
			shortTime(e.EndTime),
			e.SubjectID,
			e.Section,
			string(e.ClassKind),
			e.ProfessorID,
			e.RoomID,
			e.Program,
		})
	}
	return rows
}

// shortTime trims stored HH:MM:SS values to HH:MM for readability.
func shortTime(raw string) string {
	c, err := timetable.ParseClock(raw)
	if err != nil {
		return raw
	}
	return c.Short()
}

// TimetableCSV renders the period's entries as a CSV document.
func TimetableCSV(entries []models.TimetableEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(timetableHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range timetableRows(entries) {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// TimetablePDF renders the period's entries as a tabular PDF titled with the
// period label.
func TimetablePDF(period string, entries []models.TimetableEntry) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper("Horario "+period), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	colWidth := 277.0 / float64(len(timetableHeaders))
	for _, header := range timetableHeaders {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range timetableRows(entries) {
		for _, value := range row {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
