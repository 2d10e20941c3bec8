package sheet

import (
	"testing"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

func TestXLSXRoundTrip(t *testing.T) {
	lines := okrLines()
	data, err := ExportXLSX(lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected workbook bytes")
	}

	updates, err := ImportXLSX(data, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("untouched export should import cleanly, got %+v", updates)
	}
}

func TestXLSXRoundTripHighPrecisionActuals(t *testing.T) {
	lines := okrLines()
	lines[0].ActualValue = 8.784
	lines[0].Score()

	data, err := ExportXLSX(lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	updates, err := ImportXLSX(data, lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("untouched export should import cleanly, got %+v", updates)
	}
}

func TestXLSXImportPicksUpChangedActuals(t *testing.T) {
	lines := okrLines()
	data, err := ExportXLSX(lines, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Pretend the stored actuals moved since the export: the file's
	// values now differ and must come back as updates.
	stored := okrLines()
	stored[0].ActualValue = 2
	stored[0].Score()

	updates, err := ImportXLSX(data, stored, template.TemplateTypeOKR)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(updates) != 1 || updates[0].LineID != "l1" || updates[0].ActualValue != 8 {
		t.Fatalf("unexpected updates: %+v", updates)
	}
}

func TestXLSXNineboxSheets(t *testing.T) {
	lines := nineboxLines()
	data, err := ExportXLSX(lines, template.TemplateTypeNinebox)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	updates, err := ImportXLSX(data, lines, template.TemplateTypeNinebox)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("untouched export should import cleanly, got %+v", updates)
	}
}

func TestXLSXImportRejectsGarbage(t *testing.T) {
	if _, err := ImportXLSX([]byte("definitely not a zip"), okrLines(), template.TemplateTypeOKR); err == nil {
		t.Fatal("expected error for invalid workbook")
	}
}

func TestXLSXExportRequiresLines(t *testing.T) {
	if _, err := ExportXLSX(nil, template.TemplateTypeNinebox); err == nil {
		t.Fatal("expected error for empty 9-box export")
	}
}
