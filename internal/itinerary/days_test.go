package itinerary

import (
	"slices"
	"testing"
)

func TestParseDays_OccurrenceNumbering(t *testing.T) {
	doc := "## Day 1: Start\n### Morning\n- a\n\n## Day 3: Skip\n### Morning\n- b\n\n## Day 7\n### Evening\n- c\n"
	days := ParseDays(doc)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	wantHeading := []int{1, 3, 7}
	for i, d := range days {
		if d.Day != i+1 {
			t.Errorf("days[%d].Day = %d, want %d", i, d.Day, i+1)
		}
		if d.Heading != wantHeading[i] {
			t.Errorf("days[%d].Heading = %d, want %d", i, d.Heading, wantHeading[i])
		}
	}
	if days[2].Title != "" {
		t.Errorf("expected empty title for bare heading, got %q", days[2].Title)
	}
}

func TestParseDays_ThirdsRedistribution(t *testing.T) {
	doc := "## Day 1: Free day\n- a\n- b\n- c\n- d\n- e\n- f\n"
	days := ParseDays(doc)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	d := days[0]
	if !slices.Equal(d.Morning, []string{"a", "b"}) {
		t.Errorf("morning: got %q", d.Morning)
	}
	if !slices.Equal(d.Afternoon, []string{"c", "d"}) {
		t.Errorf("afternoon: got %q", d.Afternoon)
	}
	if !slices.Equal(d.Evening, []string{"e", "f"}) {
		t.Errorf("evening: got %q", d.Evening)
	}
	if d.Description != "- a\n- b\n- c\n- d\n- e\n- f" {
		t.Errorf("expected raw block as description, got %q", d.Description)
	}
}

func TestParseDays_ThirdsUneven(t *testing.T) {
	tests := []struct {
		n            int
		wantM, wantA int
		wantE        int
	}{
		{1, 1, 0, 0},
		{2, 1, 1, 0},
		{4, 2, 2, 0},
		{5, 2, 2, 1},
		{7, 3, 3, 1},
	}
	for _, tt := range tests {
		items := make([]string, tt.n)
		for i := range items {
			items[i] = string(rune('a' + i))
		}
		m, a, e := thirds(items)
		if len(m) != tt.wantM || len(a) != tt.wantA || len(e) != tt.wantE {
			t.Errorf("thirds(%d) = %d/%d/%d, want %d/%d/%d", tt.n, len(m), len(a), len(e), tt.wantM, tt.wantA, tt.wantE)
		}
		if got := append(append(append([]string{}, m...), a...), e...); !slices.Equal(got, items) {
			t.Errorf("thirds(%d) reordered items: %q", tt.n, got)
		}
	}
}

func TestParseDays_EmptyDayKeepsDescription(t *testing.T) {
	days := ParseDays("## Day 1\n\n## Day 2\nRest and recover.\n")
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if len(days[0].Morning)+len(days[0].Afternoon)+len(days[0].Evening) != 0 {
		t.Errorf("expected empty day 1, got %+v", days[0])
	}
	if days[0].Morning == nil || days[0].Evening == nil {
		t.Error("expected non-nil empty slices for an empty day")
	}
	if !slices.Equal(days[1].Morning, []string{"Rest and recover."}) {
		t.Errorf("expected plain line in morning, got %q", days[1].Morning)
	}
	if days[1].Description != "Rest and recover." {
		t.Errorf("unexpected description %q", days[1].Description)
	}
}

func TestParseDays_PartialStructure(t *testing.T) {
	days := ParseDays("## Day 1: Half day\n### Morning\n- Museum\n- Coffee\n")
	d := days[0]
	if !slices.Equal(d.Morning, []string{"Museum", "Coffee"}) {
		t.Errorf("morning: got %q", d.Morning)
	}
	if len(d.Afternoon) != 0 || len(d.Evening) != 0 {
		t.Errorf("expected empty afternoon/evening, got %q / %q", d.Afternoon, d.Evening)
	}
	if d.Description != "" {
		t.Errorf("expected no fallback for partially structured day, got %q", d.Description)
	}
}

func TestParseDays_PartOrderIndependent(t *testing.T) {
	days := ParseDays("## Day 1\n### Evening\n- Dinner\n### Morning\n- Hike\n")
	d := days[0]
	if !slices.Equal(d.Morning, []string{"Hike"}) || !slices.Equal(d.Evening, []string{"Dinner"}) {
		t.Errorf("got morning=%q evening=%q", d.Morning, d.Evening)
	}
}

func TestParseDays_BlockTerminators(t *testing.T) {
	doc := "## Day 1\n### Evening\n- Dinner\n\n## Weather Forecast\n- 2025-01-01: mild\n\n## Travel Tips\n- Tip\n"
	days := ParseDays(doc)
	if !slices.Equal(days[0].Evening, []string{"Dinner"}) {
		t.Errorf("expected evening to stop at next section, got %q", days[0].Evening)
	}
}

func TestParseDays_IgnoresLookalikeHeadings(t *testing.T) {
	days := ParseDays("## Daytrips nearby\n- Sintra\n\n### Day 1\n- nested\n")
	if len(days) != 0 {
		t.Errorf("expected no day blocks, got %d", len(days))
	}
}

func TestSplitDayHeading(t *testing.T) {
	tests := []struct {
		in        string
		wantNum   int
		wantTitle string
	}{
		{"Day 1", 1, ""},
		{"Day 2: Old Town", 2, "Old Town"},
		{"Day 12 Coast", 12, "Coast"},
		{"Day: Arrival", 0, "Arrival"},
		{"Day 1: Beach ### Morning (8:00 AM)", 1, "Beach"},
	}
	for _, tt := range tests {
		n, title := splitDayHeading(tt.in)
		if n != tt.wantNum || title != tt.wantTitle {
			t.Errorf("splitDayHeading(%q) = (%d, %q), want (%d, %q)", tt.in, n, title, tt.wantNum, tt.wantTitle)
		}
	}
}

func TestDayPlan_ShortTitle(t *testing.T) {
	if got := (DayPlan{Title: "Arrival: Old Town"}).ShortTitle(); got != "Old Town" {
		t.Errorf("expected %q, got %q", "Old Town", got)
	}
	if got := (DayPlan{Title: "Old Town"}).ShortTitle(); got != "Old Town" {
		t.Errorf("expected %q, got %q", "Old Town", got)
	}
}

func TestDayPlan_Activities(t *testing.T) {
	d := DayPlan{Morning: []string{"a"}, Afternoon: []string{"b"}, Evening: []string{"c", "d"}}
	if got := d.Activities(); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("unexpected activities %q", got)
	}
}
