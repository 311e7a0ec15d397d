package itinerary

import (
	"strings"
	"testing"
)

func codes(ws []Warning) map[string]int {
	m := make(map[string]int)
	for _, w := range ws {
		m[w.Code]++
	}
	return m
}

func TestDiagnose_CleanProposal(t *testing.T) {
	if ws := Diagnose(sampleProposal); len(ws) != 0 {
		t.Errorf("expected no warnings, got %+v", ws)
	}
}

func TestDiagnose_DayNumberMismatch(t *testing.T) {
	ws := Diagnose("# T\n## Day 1\n### Morning\n- a\n## Day 3\n### Morning\n- b\n")
	c := codes(ws)
	if c[WarnDayNumberMismatch] != 1 {
		t.Fatalf("expected 1 mismatch warning, got %+v", ws)
	}
	for _, w := range ws {
		if w.Code == WarnDayNumberMismatch && w.Day != 2 {
			t.Errorf("expected mismatch on day 2, got day %d", w.Day)
		}
	}
}

func TestDiagnose_UnstructuredDay(t *testing.T) {
	ws := Diagnose("# T\n## Day 1\n- a\n- b\n- c\n## Day 2\n### Evening\n- d\n")
	c := codes(ws)
	if c[WarnUnstructuredDay] != 1 {
		t.Fatalf("expected 1 unstructured warning, got %+v", ws)
	}
	if ws[0].Day != 1 {
		t.Errorf("expected warning on day 1, got %d", ws[0].Day)
	}
}

func TestDiagnose_MissingTitleAndDays(t *testing.T) {
	c := codes(Diagnose("Just some prose."))
	if c[WarnMissingTitle] != 1 || c[WarnNoDays] != 1 {
		t.Errorf("expected missing title and no days, got %v", c)
	}
}

func TestDiagnose_WeatherWithoutDetails(t *testing.T) {
	c := codes(Diagnose("# T\n## Day 1\n### Morning\n- a\n## Weather Forecast\n- Monday\n- 2025-05-10: sunny\n"))
	if c[WarnWeatherNoDetails] != 1 {
		t.Errorf("expected 1 weather warning, got %v", c)
	}
}

func TestDiagnose_DoesNotChangeParse(t *testing.T) {
	doc := "# T\n## Day 2\n- a\n"
	before := Parse(doc)
	_ = Diagnose(doc)
	after := Parse(doc)
	if before.Days[0].Day != 1 || after.Days[0].Day != 1 {
		t.Errorf("expected occurrence numbering, got %d and %d", before.Days[0].Day, after.Days[0].Day)
	}
}

func TestDiagnose_NonTerminatorHeadingInsideDay(t *testing.T) {
	doc := "# T\n## Day 1\n## Notes\n### Morning\n- Museum\n### Evening\n- Dinner\n"
	it := Parse(doc)
	if len(it.Days) != 1 || len(it.Days[0].Morning) != 1 || it.Days[0].Description != "" {
		t.Fatalf("expected one structured day, got %+v", it.Days)
	}
	if c := codes(Diagnose(doc)); c[WarnUnstructuredDay] != 0 {
		t.Errorf("expected no unstructured warning for a structured day, got %v", c)
	}
}

func TestDiagnose_FollowsParsedDays(t *testing.T) {
	tests := []struct {
		name         string
		doc          string
		days         int
		mismatch     int
		unstructured int
	}{
		{"fenced day heading", "# T\n## Day 1\n### Morning\n- a\n```\n## Day 9\n```\n", 2, 1, 1},
		{"setext day heading", "# T\nDay 1\n------\n- a\n## Day 2\n- b\n", 1, 1, 1},
		{"empty day", "# T\n## Day 1\n## Day 2\n### Afternoon\n- b\n", 2, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Parse(tt.doc).Days); got != tt.days {
				t.Fatalf("expected %d parsed days, got %d", tt.days, got)
			}
			c := codes(Diagnose(tt.doc))
			if c[WarnDayNumberMismatch] != tt.mismatch {
				t.Errorf("expected %d mismatch warnings, got %v", tt.mismatch, c)
			}
			if c[WarnUnstructuredDay] != tt.unstructured {
				t.Errorf("expected %d unstructured warnings, got %v", tt.unstructured, c)
			}
		})
	}
}

func TestDiagnose_SetextTitle(t *testing.T) {
	ws := Diagnose("Rome Getaway\n============\n## Day 1\n### Morning\n- a\n")
	if len(ws) != 1 || ws[0].Code != WarnMissingTitle {
		t.Fatalf("expected only a missing title warning, got %+v", ws)
	}
	if !strings.Contains(ws[0].Message, "Rome Getaway") {
		t.Errorf("expected message to name the setext heading, got %q", ws[0].Message)
	}
}
