package sheet

import (
	"fmt"
	"strconv"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

// Workbook is the JSON payload the spreadsheet document module stores
// and renders: cell map per sheet plus shared styles and formats.
type Workbook struct {
	Version    int               `json:"version"`
	Sheets     []Sheet           `json:"sheets"`
	Styles     map[string]Style  `json:"styles"`
	Formats    map[string]string `json:"formats"`
	Borders    map[string]any    `json:"borders"`
	Settings   Settings          `json:"settings"`
	RevisionID string            `json:"revisionId"`
}

type Sheet struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ColNumber int             `json:"colNumber"`
	RowNumber int             `json:"rowNumber"`
	Cells     map[string]Cell `json:"cells"`
	Merges    []string        `json:"merges"`
}

type Cell struct {
	Content string `json:"content,omitempty"`
	Formula string `json:"formula,omitempty"`
	Style   int    `json:"style,omitempty"`
	Format  int    `json:"format,omitempty"`
}

type Style struct {
	Bold      bool   `json:"bold,omitempty"`
	FillColor string `json:"fillColor,omitempty"`
	TextColor string `json:"textColor,omitempty"`
}

type Settings struct {
	Locale string `json:"locale"`
}

const (
	workbookVersion = 16
	startRevisionID = "START_REVISION"

	sheetIDOKR         = "sheet1"
	sheetIDPerformance = "performance_sheet"
	sheetIDPotential   = "potential_sheet"

	sheetNameOKR         = "OKR Criteria"
	sheetNamePerformance = "Performance Criteria"
	sheetNamePotential   = "Potential Criteria"

	styleHeaderOKR         = 1
	styleTotalsOKR         = 2
	styleHeaderPerformance = 3
	styleTotalsPerformance = 4
	styleHeaderPotential   = 5
	styleTotalsPotential   = 6

	formatNumber = 1
)

// Fixed grid: one criteria line per row, achievement derivable from
// target and actual.
var headers = []string{
	"Seq", "Objective Breakdown", "Priority", "Metric",
	"Target Value", "Actual Value", "Achievement %", "Weightage %", "Team",
}

const (
	colSeq = iota
	colObjective
	colPriority
	colMetric
	colTarget
	colActual
	colAchievement
	colWeightage
	colTeam
)

// Options control workbook generation.
type Options struct {
	Locale string
	// LiveFormulas emits spreadsheet formulas for the Achievement %
	// column instead of precomputed values, so edits to the Actual
	// column recalculate in place.
	LiveFormulas bool
}

// Build renders criteria lines into the workbook payload. OKR
// appraisals get a single sheet; 9-box appraisals get separate
// performance and potential sheets.
func Build(lines []appraisal.Line, templateType string, opts Options) Workbook {
	locale := opts.Locale
	if locale == "" {
		locale = "en_US"
	}

	wb := Workbook{
		Version: workbookVersion,
		Styles: map[string]Style{
			strconv.Itoa(styleHeaderOKR):         {Bold: true, FillColor: "#4A90E2", TextColor: "#FFFFFF"},
			strconv.Itoa(styleTotalsOKR):         {Bold: true, FillColor: "#E8F5E9"},
			strconv.Itoa(styleHeaderPerformance): {Bold: true, FillColor: "#4CAF50", TextColor: "#FFFFFF"},
			strconv.Itoa(styleTotalsPerformance): {Bold: true, FillColor: "#C8E6C9"},
			strconv.Itoa(styleHeaderPotential):   {Bold: true, FillColor: "#2196F3", TextColor: "#FFFFFF"},
			strconv.Itoa(styleTotalsPotential):   {Bold: true, FillColor: "#BBDEFB"},
		},
		Formats:    map[string]string{strconv.Itoa(formatNumber): "#,##0.00"},
		Borders:    map[string]any{},
		Settings:   Settings{Locale: locale},
		RevisionID: startRevisionID,
	}

	if templateType == template.TemplateTypeNinebox {
		perf := filterSection(lines, template.SectionPerformance)
		pot := filterSection(lines, template.SectionPotential)
		if len(perf) > 0 {
			wb.Sheets = append(wb.Sheets, buildSheet(sheetIDPerformance, sheetNamePerformance, perf,
				styleHeaderPerformance, styleTotalsPerformance, opts))
		}
		if len(pot) > 0 {
			wb.Sheets = append(wb.Sheets, buildSheet(sheetIDPotential, sheetNamePotential, pot,
				styleHeaderPotential, styleTotalsPotential, opts))
		}
		return wb
	}

	wb.Sheets = append(wb.Sheets, buildSheet(sheetIDOKR, sheetNameOKR, lines,
		styleHeaderOKR, styleTotalsOKR, opts))
	return wb
}

func buildSheet(id, name string, lines []appraisal.Line, headerStyle, totalsStyle int, opts Options) Sheet {
	cells := map[string]Cell{}

	for col, header := range headers {
		cells[cellRef(col, 1)] = Cell{Content: header, Style: headerStyle}
	}

	var targetSum, actualSum, weightageSum float64
	for i, line := range lines {
		row := i + 2
		cells[cellRef(colSeq, row)] = Cell{Content: strconv.Itoa(line.Sequence)}
		cells[cellRef(colObjective, row)] = Cell{Content: line.Objective}
		cells[cellRef(colPriority, row)] = Cell{Content: line.Priority}
		cells[cellRef(colMetric, row)] = Cell{Content: line.Metric}
		cells[cellRef(colTarget, row)] = numberCell(line.TargetValue)
		cells[cellRef(colActual, row)] = numberCell(line.ActualValue)
		if opts.LiveFormulas && line.TargetValue > 0 {
			cells[cellRef(colAchievement, row)] = Cell{
				Formula: fmt.Sprintf("=%s/%s*100", cellRef(colActual, row), cellRef(colTarget, row)),
				Format:  formatNumber,
			}
		} else {
			cells[cellRef(colAchievement, row)] = numberCell(line.Achievement)
		}
		cells[cellRef(colWeightage, row)] = numberCell(line.Weightage)
		cells[cellRef(colTeam, row)] = Cell{Content: line.TeamName}

		targetSum += line.TargetValue
		actualSum += line.ActualValue
		weightageSum += line.Weightage
	}

	totalRow := len(lines) + 2
	cells[cellRef(colSeq, totalRow)] = Cell{Content: "TOTALS:", Style: totalsStyle}
	cells[cellRef(colTarget, totalRow)] = Cell{Content: formatNumberValue(targetSum), Style: totalsStyle}
	cells[cellRef(colActual, totalRow)] = Cell{Content: formatNumberValue(actualSum), Style: totalsStyle}
	cells[cellRef(colWeightage, totalRow)] = Cell{Content: formatNumberValue(weightageSum), Style: totalsStyle}

	return Sheet{
		ID:        id,
		Name:      name,
		ColNumber: len(headers),
		RowNumber: totalRow,
		Cells:     cells,
		Merges:    []string{},
	}
}

func filterSection(lines []appraisal.Line, section string) []appraisal.Line {
	var matched []appraisal.Line
	for _, line := range lines {
		if line.Section == section {
			matched = append(matched, line)
		}
	}
	return matched
}

func numberCell(value float64) Cell {
	return Cell{Content: formatNumberValue(value), Format: formatNumber}
}

func formatNumberValue(value float64) string {
	return strconv.FormatFloat(round2(value), 'f', -1, 64)
}

func round2(value float64) float64 {
	scaled := value * 100
	if scaled < 0 {
		return float64(int64(scaled-0.5)) / 100
	}
	return float64(int64(scaled+0.5)) / 100
}

// cellRef builds an A1-style reference; col is zero based.
func cellRef(col, row int) string {
	return columnLetter(col) + strconv.Itoa(row)
}

// columnLetter converts 0 to A, 25 to Z, 26 to AA and so on.
func columnLetter(n int) string {
	result := ""
	for n >= 0 {
		result = string(rune('A'+n%26)) + result
		n = n/26 - 1
	}
	return result
}
