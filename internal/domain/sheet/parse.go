package sheet

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

// actualEpsilon guards against redundant writes when a parsed actual
// value only differs from the stored one by floating point noise.
const actualEpsilon = 0.001

// ApplyActuals reads the Actual Value column of an edited workbook back
// into updates for the given lines. Rows are matched positionally per
// sheet, in the same order Build emitted them. Parsed values are
// compared against the stored actual at the two decimal places the
// grid renders, so re-parsing untouched cells never emits updates even
// when the stored value carries more precision.
func ApplyActuals(wb Workbook, lines []appraisal.Line, templateType string) ([]appraisal.ActualUpdate, error) {
	var updates []appraisal.ActualUpdate
	for _, s := range wb.Sheets {
		section, err := sectionForSheet(s.ID, templateType)
		if err != nil {
			return nil, err
		}
		sectionLines := lines
		if section != "" {
			sectionLines = filterSection(lines, section)
		}

		for i, line := range sectionLines {
			cell, ok := s.Cells[cellRef(colActual, i+2)]
			if !ok || cell.Content == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell.Content, 64)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: invalid actual value %q", s.ID, i+2, cell.Content)
			}
			if math.Abs(value-round2(line.ActualValue)) <= actualEpsilon {
				continue
			}
			updates = append(updates, appraisal.ActualUpdate{LineID: line.ID, ActualValue: value})
		}
	}
	return updates, nil
}

func sectionForSheet(sheetID, templateType string) (string, error) {
	if templateType == template.TemplateTypeNinebox {
		switch sheetID {
		case sheetIDPerformance:
			return template.SectionPerformance, nil
		case sheetIDPotential:
			return template.SectionPotential, nil
		}
		return "", fmt.Errorf("unexpected sheet %q for 9-box workbook", sheetID)
	}
	if sheetID != sheetIDOKR {
		return "", fmt.Errorf("unexpected sheet %q for OKR workbook", sheetID)
	}
	return "", nil
}
