package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

// SummaryPDF renders one appraisal with its criteria lines and score
// totals as a downloadable PDF.
func SummaryPDF(a appraisal.Appraisal, lines []appraisal.Line, summary appraisal.ScoreSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", a.EmployeeName))
	pdf.Ln(7)
	if a.BadgeCode != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Badge: %s", a.BadgeCode))
		pdf.Ln(7)
	}
	if a.TeamName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Team: %s", a.TeamName))
		pdf.Ln(7)
	}
	if a.SelectedTemplate != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Template: %s", a.SelectedTemplate))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", a.Status))
	pdf.Ln(10)

	if len(lines) > 0 {
		writeLineTable(pdf, lines)
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 12)
	if a.TemplateType == template.TemplateTypeNinebox {
		pdf.Cell(0, 8, fmt.Sprintf("Performance: %.2f", summary.PerformanceTotal))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Potential: %.2f", summary.PotentialTotal))
		pdf.Ln(7)
	} else {
		pdf.Cell(0, 8, fmt.Sprintf("OKR Total: %.2f", summary.OKRTotal))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Final Score: %.2f", summary.FinalScore))
	pdf.Ln(7)
	if summary.Rating != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Rating: %s", ratingLabel(summary.Rating)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLineTable(pdf *gofpdf.Fpdf, lines []appraisal.Line) {
	widths := []float64{70, 20, 20, 25, 25, 30}
	headers := []string{"Objective", "Target", "Actual", "Achieve %", "Weight %", "Score"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		cells := []string{
			truncateLabel(line.Objective, 45),
			fmt.Sprintf("%.2f", line.TargetValue),
			fmt.Sprintf("%.2f", line.ActualValue),
			fmt.Sprintf("%.2f", line.Achievement),
			fmt.Sprintf("%.2f", line.Weightage),
			fmt.Sprintf("%.2f", line.WeightedScore),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// truncateLabel caps a cell label at max runes, ending the cut with an
// ellipsis. Counting runes keeps multibyte characters intact.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func ratingLabel(rating string) string {
	words := strings.Split(rating, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
