package sheet

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

// ExportXLSX renders the same grid as Build into a downloadable .xlsx
// file, one worksheet per section.
func ExportXLSX(lines []appraisal.Line, templateType string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	type sectionSheet struct {
		name        string
		headerColor string
		lines       []appraisal.Line
	}

	var sheets []sectionSheet
	if templateType == template.TemplateTypeNinebox {
		if perf := filterSection(lines, template.SectionPerformance); len(perf) > 0 {
			sheets = append(sheets, sectionSheet{sheetNamePerformance, "4CAF50", perf})
		}
		if pot := filterSection(lines, template.SectionPotential); len(pot) > 0 {
			sheets = append(sheets, sectionSheet{sheetNamePotential, "2196F3", pot})
		}
	} else {
		sheets = append(sheets, sectionSheet{sheetNameOKR, "4A90E2", lines})
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no criteria lines to export")
	}

	for i, section := range sheets {
		name := section.name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{section.headerColor}, Pattern: 1},
		})
		if err != nil {
			return nil, err
		}

		for col, header := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, header); err != nil {
				return nil, err
			}
		}
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(name, "A1", lastHeader, headerStyle); err != nil {
			return nil, err
		}

		var targetSum, actualSum, weightageSum float64
		for rowIdx, line := range section.lines {
			row := rowIdx + 2
			values := []any{
				line.Sequence, line.Objective, line.Priority, line.Metric,
				round2(line.TargetValue), round2(line.ActualValue), round2(line.Achievement),
				round2(line.Weightage), line.TeamName,
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(name, cell, value); err != nil {
					return nil, err
				}
			}
			targetSum += line.TargetValue
			actualSum += line.ActualValue
			weightageSum += line.Weightage
		}

		totalRow := len(section.lines) + 2
		totals := map[int]any{
			colSeq:       "TOTALS:",
			colTarget:    round2(targetSum),
			colActual:    round2(actualSum),
			colWeightage: round2(weightageSum),
		}
		for col, value := range totals {
			cell, err := excelize.CoordinatesToCellName(col+1, totalRow)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportXLSX reads the Actual Value column of an uploaded .xlsx back
// into updates for the given lines, with the same positional matching
// and rendered-precision epsilon guard as ApplyActuals.
func ImportXLSX(data []byte, lines []appraisal.Line, templateType string) ([]appraisal.ActualUpdate, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	type sectionSheet struct {
		name  string
		lines []appraisal.Line
	}

	var sheets []sectionSheet
	if templateType == template.TemplateTypeNinebox {
		sheets = append(sheets,
			sectionSheet{sheetNamePerformance, filterSection(lines, template.SectionPerformance)},
			sectionSheet{sheetNamePotential, filterSection(lines, template.SectionPotential)},
		)
	} else {
		sheets = append(sheets, sectionSheet{sheetNameOKR, lines})
	}

	var updates []appraisal.ActualUpdate
	for _, section := range sheets {
		if len(section.lines) == 0 {
			continue
		}
		if idx, err := f.GetSheetIndex(section.name); err != nil || idx < 0 {
			continue
		}
		for i, line := range section.lines {
			cell, err := excelize.CoordinatesToCellName(colActual+1, i+2)
			if err != nil {
				return nil, err
			}
			raw, err := f.GetCellValue(section.name, cell)
			if err != nil {
				return nil, err
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("sheet %s cell %s: invalid actual value %q", section.name, cell, raw)
			}
			if math.Abs(value-round2(line.ActualValue)) <= actualEpsilon {
				continue
			}
			updates = append(updates, appraisal.ActualUpdate{LineID: line.ID, ActualValue: value})
		}
	}
	return updates, nil
}
