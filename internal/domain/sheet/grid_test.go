package sheet

import (
	"testing"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

func okrLines() []appraisal.Line {
	lines := []appraisal.Line{
		{ID: "l1", Section: template.SectionOKR, Sequence: 10, Objective: "Ship v2", Priority: "high",
			Metric: "count", TargetValue: 10, ActualValue: 8, Weightage: 60, TeamName: "Platform"},
		{ID: "l2", Section: template.SectionOKR, Sequence: 20, Objective: "Cut latency", Priority: "medium",
			Metric: "percentage", TargetValue: 50, ActualValue: 40, Weightage: 40, TeamName: "Platform"},
	}
	for i := range lines {
		lines[i].Score()
	}
	return lines
}

func nineboxLines() []appraisal.Line {
	lines := []appraisal.Line{
		{ID: "p1", Section: template.SectionPerformance, Sequence: 10, Objective: "Deliver roadmap",
			TargetValue: 100, ActualValue: 90, Weightage: 100, TeamName: "Sales"},
		{ID: "q1", Section: template.SectionPotential, Sequence: 10, Objective: "Leadership readiness",
			TargetValue: 5, ActualValue: 4, Weightage: 100, TeamName: "Sales"},
	}
	for i := range lines {
		lines[i].Score()
	}
	return lines
}

func TestBuildOKRWorkbook(t *testing.T) {
	wb := Build(okrLines(), template.TemplateTypeOKR, Options{})

	if wb.Version != workbookVersion || wb.RevisionID != startRevisionID {
		t.Fatalf("unexpected workbook envelope: %+v", wb)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("expected one sheet, got %d", len(wb.Sheets))
	}

	s := wb.Sheets[0]
	if s.ID != sheetIDOKR || s.ColNumber != len(headers) || s.RowNumber != 4 {
		t.Fatalf("unexpected sheet shape: %+v", s)
	}
	if s.Cells["A1"].Content != "Seq" || s.Cells["I1"].Content != "Team" {
		t.Fatalf("unexpected header row: %+v", s.Cells)
	}
	if s.Cells["B2"].Content != "Ship v2" {
		t.Fatalf("unexpected objective cell: %+v", s.Cells["B2"])
	}
	if s.Cells["F2"].Content != "8" {
		t.Fatalf("unexpected actual cell: %+v", s.Cells["F2"])
	}
	if s.Cells["G2"].Content != "80" {
		t.Fatalf("unexpected achievement cell: %+v", s.Cells["G2"])
	}
	if s.Cells["A4"].Content != "TOTALS:" {
		t.Fatalf("missing totals row: %+v", s.Cells["A4"])
	}
	if s.Cells["E4"].Content != "60" || s.Cells["F4"].Content != "48" || s.Cells["H4"].Content != "100" {
		t.Fatalf("unexpected totals: E4=%v F4=%v H4=%v", s.Cells["E4"], s.Cells["F4"], s.Cells["H4"])
	}
}

func TestBuildNineboxWorkbookSplitsSections(t *testing.T) {
	wb := Build(nineboxLines(), template.TemplateTypeNinebox, Options{})
	if len(wb.Sheets) != 2 {
		t.Fatalf("expected two sheets, got %d", len(wb.Sheets))
	}
	if wb.Sheets[0].ID != sheetIDPerformance || wb.Sheets[1].ID != sheetIDPotential {
		t.Fatalf("unexpected sheet ids: %s %s", wb.Sheets[0].ID, wb.Sheets[1].ID)
	}
	if wb.Sheets[0].Cells["B2"].Content != "Deliver roadmap" {
		t.Fatalf("performance row missing: %+v", wb.Sheets[0].Cells["B2"])
	}
	if wb.Sheets[1].Cells["B2"].Content != "Leadership readiness" {
		t.Fatalf("potential row missing: %+v", wb.Sheets[1].Cells["B2"])
	}
	if wb.Sheets[0].Cells["A1"].Style != styleHeaderPerformance {
		t.Fatalf("expected performance header style, got %d", wb.Sheets[0].Cells["A1"].Style)
	}
}

func TestBuildLiveFormulas(t *testing.T) {
	wb := Build(okrLines(), template.TemplateTypeOKR, Options{LiveFormulas: true})
	cell := wb.Sheets[0].Cells["G2"]
	if cell.Formula != "=F2/E2*100" {
		t.Fatalf("expected achievement formula, got %+v", cell)
	}

	// A non-positive target must not emit a division formula.
	lines := okrLines()
	lines[0].TargetValue = 0
	lines[0].Score()
	wb = Build(lines, template.TemplateTypeOKR, Options{LiveFormulas: true})
	cell = wb.Sheets[0].Cells["G2"]
	if cell.Formula != "" || cell.Content != "0" {
		t.Fatalf("expected literal zero achievement, got %+v", cell)
	}
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for n, want := range cases {
		if got := columnLetter(n); got != want {
			t.Fatalf("columnLetter(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestApplyActualsRoundTrip(t *testing.T) {
	lines := okrLines()
	wb := Build(lines, template.TemplateTypeOKR, Options{})

	updates, err := ApplyActuals(wb, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("apply actuals: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("unmodified workbook should produce no updates, got %+v", updates)
	}
}

func TestApplyActualsRoundTripHighPrecisionActuals(t *testing.T) {
	// Stored actuals may carry more precision than the two decimals
	// the grid renders; an untouched workbook must still apply as a
	// no-op rather than quantize the stored value.
	lines := okrLines()
	lines[0].ActualValue = 8.784
	lines[0].Score()
	wb := Build(lines, template.TemplateTypeOKR, Options{})

	if got := wb.Sheets[0].Cells["F2"].Content; got != "8.78" {
		t.Fatalf("expected rendered actual 8.78, got %q", got)
	}

	updates, err := ApplyActuals(wb, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("apply actuals: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("untouched workbook should produce no updates, got %+v", updates)
	}

	// A genuine edit on the same line still comes through.
	wb.Sheets[0].Cells["F2"] = Cell{Content: "8.9"}
	updates, err = ApplyActuals(wb, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("apply actuals: %v", err)
	}
	if len(updates) != 1 || updates[0].LineID != "l1" || updates[0].ActualValue != 8.9 {
		t.Fatalf("unexpected updates: %+v", updates)
	}
}

func TestApplyActualsDetectsEdits(t *testing.T) {
	lines := okrLines()
	wb := Build(lines, template.TemplateTypeOKR, Options{})
	wb.Sheets[0].Cells["F2"] = Cell{Content: "9.5"}

	updates, err := ApplyActuals(wb, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("apply actuals: %v", err)
	}
	if len(updates) != 1 || updates[0].LineID != "l1" || updates[0].ActualValue != 9.5 {
		t.Fatalf("unexpected updates: %+v", updates)
	}
}

func TestApplyActualsEpsilonGuard(t *testing.T) {
	lines := okrLines()
	wb := Build(lines, template.TemplateTypeOKR, Options{})
	wb.Sheets[0].Cells["F2"] = Cell{Content: "8.0005"}

	updates, err := ApplyActuals(wb, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("apply actuals: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("change within epsilon should be skipped, got %+v", updates)
	}
}

func TestApplyActualsNineboxSections(t *testing.T) {
	lines := nineboxLines()
	wb := Build(lines, template.TemplateTypeNinebox, Options{})
	wb.Sheets[1].Cells["F2"] = Cell{Content: "5"}

	updates, err := ApplyActuals(wb, lines, template.TemplateTypeNinebox)
	if err != nil {
		t.Fatalf("apply actuals: %v", err)
	}
	if len(updates) != 1 || updates[0].LineID != "q1" || updates[0].ActualValue != 5 {
		t.Fatalf("unexpected updates: %+v", updates)
	}
}

func TestApplyActualsRejectsGarbage(t *testing.T) {
	lines := okrLines()
	wb := Build(lines, template.TemplateTypeOKR, Options{})
	wb.Sheets[0].Cells["F2"] = Cell{Content: "not-a-number"}

	if _, err := ApplyActuals(wb, lines, template.TemplateTypeOKR); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyActualsRejectsForeignSheet(t *testing.T) {
	lines := okrLines()
	wb := Build(lines, template.TemplateTypeOKR, Options{})
	wb.Sheets[0].ID = "bogus"

	if _, err := ApplyActuals(wb, lines, template.TemplateTypeOKR); err == nil {
		t.Fatal("expected unexpected-sheet error")
	}
}
