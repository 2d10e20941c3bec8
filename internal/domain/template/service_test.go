package template

import "testing"

func sampleLines() []TemplateLine {
	return []TemplateLine{
		{ID: "1", Section: SectionOKR, LineType: LineTypeDepartment, TeamID: "team-a", Objective: "Ship feature"},
		{ID: "2", Section: SectionOKR, LineType: LineTypeRole, TeamID: "team-a", Objective: "Mentor juniors"},
		{ID: "3", Section: SectionOKR, LineType: LineTypeDepartment, TeamID: "team-b", Objective: "Reduce churn"},
		{ID: "4", Section: SectionOKR, LineType: LineTypeCommon, TeamID: "team-a", Objective: "Attendance"},
	}
}

func TestFilterLinesByTypeAndTeam(t *testing.T) {
	matched := FilterLines(sampleLines(), LineTypeDepartment, "team-a")
	if len(matched) != 1 || matched[0].ID != "1" {
		t.Fatalf("expected only line 1, got %+v", matched)
	}
}

func TestFilterLinesTeamOnly(t *testing.T) {
	matched := FilterLines(sampleLines(), "", "team-a")
	if len(matched) != 3 {
		t.Fatalf("expected 3 team-a lines, got %d", len(matched))
	}
}

func TestFilterLinesNoMatch(t *testing.T) {
	matched := FilterLines(sampleLines(), LineTypeRole, "team-b")
	if matched != nil {
		t.Fatalf("expected no matches, got %+v", matched)
	}
}

func TestFilterLinesKeepsOrder(t *testing.T) {
	matched := FilterLines(sampleLines(), "", "")
	for i := 1; i < len(matched); i++ {
		if matched[i-1].ID > matched[i].ID {
			t.Fatalf("order not preserved: %+v", matched)
		}
	}
}
