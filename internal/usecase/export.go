package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// Export report types.
const (
	ExportByCategory = "por_duvida"
	ExportDetailed   = "detalhado"
)

// pdfDetailRowCap bounds the detailed PDF so huge ranges stay printable.
const pdfDetailRowCap = 100

// ExportFilename builds the timestamped attachment name for a report.
func ExportFilename(reportType, extension string, now time.Time) string {
	return fmt.Sprintf("relatorio_%s_%s.%s", reportType, now.Format("20060102_1504"), extension)
}

func formatLocal(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().In(loc).Format("02/01/2006 15:04")
}

func attendantOrUnknown(s string) string {
	if s == "" {
		return AttendantUnknown
	}
	return s
}

// BuildCSV renders the filtered calls as a CSV document: a full row dump
// for the detailed type, otherwise a per-category summary skipping
// zero-count categories.
func BuildCSV(calls []model.Call, reportType string, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if reportType == ExportDetailed {
		if err := writer.Write([]string{"ID", "CRO", "Nome Inscrito", "Dúvida", "Observação", "Atendente", "Data/Hora"}); err != nil {
			return nil, fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, call := range calls {
			record := []string{
				strconv.FormatInt(call.ID, 10),
				call.Registration,
				call.RegistrantName,
				call.Category,
				call.Note,
				attendantOrUnknown(call.Attendant),
				formatLocal(call.CreatedAt, loc),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	} else {
		byCategory := make(map[string]int)
		for _, call := range calls {
			byCategory[call.Category]++
		}
		if err := writer.Write([]string{"Tipo de Dúvida", "Quantidade"}); err != nil {
			return nil, fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, category := range model.CategoryOptions {
			count := byCategory[category]
			if count == 0 {
				continue
			}
			if err := writer.Write([]string{category, strconv.Itoa(count)}); err != nil {
				return nil, fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildPDF renders the filtered calls as a tabular PDF report.
func BuildPDF(calls []model.Call, reportType string, filter ReportFilter, loc *time.Location, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, translator("ELEIÇÕES CRORS - 2025"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, translator(reportTitle(reportType)), "", 1, "L", false, 0, "")

	if filter.Start != nil || filter.End != nil {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, translator(periodLine(filter)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if reportType == ExportDetailed {
		writeDetailTable(pdf, translator, calls, loc)
	} else {
		writeSummaryTable(pdf, translator, calls)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, translator(fmt.Sprintf("Total de registros: %d", len(calls))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, translator(fmt.Sprintf("Gerado em: %s", now.In(loc).Format("02/01/2006 às 15:04"))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func reportTitle(reportType string) string {
	if reportType == ExportDetailed {
		return "Relatório de Ligações - Detalhado"
	}
	return "Relatório de Ligações - Por Dúvida"
}

func periodLine(filter ReportFilter) string {
	start := "Início"
	if filter.Start != nil {
		start = filter.Start.Format("02/01/2006")
	}
	end := "Fim"
	if filter.End != nil {
		end = filter.End.Format("02/01/2006")
	}
	return fmt.Sprintf("Período: %s até %s", start, end)
}

func writeDetailTable(pdf *gofpdf.Fpdf, translator func(string) string, calls []model.Call, loc *time.Location) {
	widths := []float64{12, 22, 40, 55, 32, 29}
	headers := []string{"ID", "CRO", "Nome", "Dúvida", "Atendente", "Data/Hora"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, translator(header), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	rows := calls
	if len(rows) > pdfDetailRowCap {
		rows = rows[:pdfDetailRowCap]
	}
	for _, call := range rows {
		cells := []string{
			strconv.FormatInt(call.ID, 10),
			truncate(call.Registration, 15),
			truncate(call.RegistrantName, 20),
			truncate(call.Category, 30),
			truncate(attendantOrUnknown(call.Attendant), 15),
			formatLocal(call.CreatedAt, loc),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, translator(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeSummaryTable(pdf *gofpdf.Fpdf, translator func(string) string, calls []model.Call) {
	byCategory := make(map[string]int)
	for _, call := range calls {
		byCategory[call.Category]++
	}
	total := len(calls)

	widths := []float64{120, 30, 30}
	headers := []string{"Tipo de Dúvida", "Quantidade", "Percentual"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, translator(header), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, category := range model.CategoryOptions {
		count := byCategory[category]
		if count == 0 {
			continue
		}
		pct := "0%"
		if total > 0 {
			pct = fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
		}
		cells := []string{truncate(category, 40), strconv.Itoa(count), pct}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, translator(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
