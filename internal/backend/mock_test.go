package backend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    ExtractedInfo
	}{
		{
			name:    "full request",
			request: "Hi! We are a family of 4 and want to go to Lisbon for 5 days. Our budget is $4,500 and we love museums.",
			want: ExtractedInfo{
				Destination: "Lisbon",
				Duration:    "5 days",
				Travelers:   "4",
				Budget:      "$4,500",
				Interests:   "museums, history, culture",
				TravelType:  "cultural exploration",
			},
		},
		{
			name:    "weeks and beach",
			request: "Looking for a 2 week beach trip to Crete with 3 adults.",
			want: ExtractedInfo{
				Destination: "Crete",
				Duration:    "14 days",
				Travelers:   "3",
				Budget:      "$3000",
				Interests:   "beaches, swimming, relaxation",
				TravelType:  "beach vacation",
			},
		},
		{
			name:    "defaults",
			request: "surprise me",
			want: ExtractedInfo{
				Destination: "Paris",
				Duration:    "7 days",
				Travelers:   "2",
				Budget:      "$3000",
				Interests:   "sightseeing, local cuisine",
				TravelType:  "cultural exploration",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.request); got != tt.want {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMockClient_ProposalParses(t *testing.T) {
	resp, err := (&MockClient{}).Process(context.Background(), "Plan 3 days in Kyoto for us, budget 2000.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Packages) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(resp.Packages))
	}
	if resp.Packages[1].Price != resp.Packages[0].Price*1.5 {
		t.Errorf("expected deluxe package at 1.5x, got %v and %v", resp.Packages[0].Price, resp.Packages[1].Price)
	}

	it := itinerary.Parse(resp.Proposal)
	if it.Title != "3-Day Itinerary for Kyoto" {
		t.Errorf("unexpected title %q", it.Title)
	}
	if len(it.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(it.Days))
	}
	for _, d := range it.Days {
		if len(d.Morning) != 3 || len(d.Evening) != 2 {
			t.Errorf("day %d: unexpected parts %+v", d.Day, d)
		}
	}
	if len(it.PracticalInfo.Costs) != 4 {
		t.Errorf("expected 4 cost lines, got %d", len(it.PracticalInfo.Costs))
	}
	if it.Weather == nil || len(it.Weather.Days) != 5 {
		t.Fatalf("expected 5 weather days, got %+v", it.Weather)
	}
	if len(it.TravelTips) != 7 {
		t.Errorf("expected 7 travel tips, got %d", len(it.TravelTips))
	}
	if ws := itinerary.Diagnose(resp.Proposal); len(ws) != 0 {
		t.Errorf("expected clean proposal, got warnings %+v", ws)
	}
}

func TestMockClient_Deterministic(t *testing.T) {
	a := MockProposal("Rome", 2, []string{"food"})
	b := MockProposal("Rome", 2, []string{"food"})
	if a != b {
		t.Error("expected identical proposals for identical input")
	}
	if !strings.Contains(a, "- Food experience\n") {
		t.Errorf("expected capitalized interest line, got:\n%s", a)
	}
}

func TestMockClient_CapsDays(t *testing.T) {
	resp, err := (&MockClient{}).Process(context.Background(), "Ten weeks to Peru for 90 days.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(itinerary.Parse(resp.Proposal).Days); n != maxMockDays {
		t.Errorf("expected %d days, got %d", maxMockDays, n)
	}
}

func TestMockClient_EmptyAndCancelled(t *testing.T) {
	m := &MockClient{Delay: time.Second}
	if _, err := m.Process(context.Background(), ""); !errors.Is(err, ErrEmptyRequest) {
		t.Errorf("expected ErrEmptyRequest, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Process(ctx, "Rome"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
