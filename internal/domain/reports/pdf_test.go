package reports

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

func TestSummaryPDF(t *testing.T) {
	a := appraisal.Appraisal{
		EmployeeName:     "Jordan Blake",
		BadgeCode:        "EMP001",
		TeamName:         "Platform",
		TemplateType:     template.TemplateTypeOKR,
		SelectedTemplate: "[OKR] Engineering Q3",
		Status:           appraisal.StatusCompleted,
	}
	lines := []appraisal.Line{
		{Objective: "Ship v2", TargetValue: 10, ActualValue: 8, Weightage: 60},
		{Objective: "Cut latency", TargetValue: 50, ActualValue: 40, Weightage: 40},
	}
	for i := range lines {
		lines[i].Score()
	}
	summary := appraisal.ComputeScores(lines, a.TemplateType)

	data, err := SummaryPDF(a, lines, summary)
	if err != nil {
		t.Fatalf("summary pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF output, got %q", data[:min(len(data), 8)])
	}
}

func TestTruncateLabel(t *testing.T) {
	short := "Ship v2"
	if got := truncateLabel(short, 45); got != short {
		t.Fatalf("short label should pass through, got %q", got)
	}

	long := strings.Repeat("拡", 50)
	got := truncateLabel(long, 45)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated label is not valid UTF-8: %q", got)
	}
	if want := strings.Repeat("拡", 42) + "..."; got != want {
		t.Fatalf("truncateLabel = %q, want %q", got, want)
	}
}

func TestRatingLabel(t *testing.T) {
	cases := map[string]string{
		"outstanding":          "Outstanding",
		"exceeds_expectations": "Exceeds Expectations",
		"needs_improvement":    "Needs Improvement",
	}
	for in, want := range cases {
		if got := ratingLabel(in); got != want {
			t.Fatalf("ratingLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
