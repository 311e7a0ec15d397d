package itinerary

import (
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"testing"
)

const sampleProposal = `# 2-Day Itinerary for Lisbon

## Overview
A short city break through Lisbon's old quarters.

## Day 1: Arrival and Alfama
### Morning (8:00 AM - 12:00 PM)
- Breakfast at Café Central
- Visit the São Jorge Castle
### Afternoon (12:00 PM - 5:00 PM)
- Lunch at a local tasca
### Evening (5:00 PM - 10:00 PM)
- Fado show in Alfama

## Day 2: Belém
### Morning
- Jerónimos Monastery
### Afternoon
- Pastéis de Belém
- MAAT museum
### Evening
- Sunset at Miradouro

## Practical Information
### Recommended Accommodations
- Hotel Lisbon Plaza - 4-star centrally located hotel
- Lisbon Boutique Suites
### Transportation Options
- Public transportation: metro and trams
### Estimated Costs
- Meals: $30-80 per person per day
- Attractions: $15-25 per attraction

## Weather Forecast
- 2025-05-10: 22.5°C to 28.1°C, Precipitation: 0.0mm
- 2025-05-11: 21.8°C to 27.5°C, Precipitation: 7.5mm

## Destination Information
Country: Portugal
Continent: Europe

## Travel Tips
### General Tips
- Carry a copy of your passport
- Download offline maps
### Local Customs
- Greet locals with a smile
- Tipping is optional but appreciated
`

func TestParse_FullProposal(t *testing.T) {
	it := Parse(sampleProposal)

	if it.Title != "2-Day Itinerary for Lisbon" {
		t.Errorf("expected title %q, got %q", "2-Day Itinerary for Lisbon", it.Title)
	}
	if it.Overview != "A short city break through Lisbon's old quarters." {
		t.Errorf("unexpected overview %q", it.Overview)
	}

	if len(it.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(it.Days))
	}
	d1 := it.Days[0]
	if d1.Day != 1 || d1.Title != "Arrival and Alfama" {
		t.Errorf("day 1: got day=%d title=%q", d1.Day, d1.Title)
	}
	if !slices.Equal(d1.Morning, []string{"Breakfast at Café Central", "Visit the São Jorge Castle"}) {
		t.Errorf("day 1 morning: got %q", d1.Morning)
	}
	if !slices.Equal(d1.Afternoon, []string{"Lunch at a local tasca"}) {
		t.Errorf("day 1 afternoon: got %q", d1.Afternoon)
	}
	if !slices.Equal(d1.Evening, []string{"Fado show in Alfama"}) {
		t.Errorf("day 1 evening: got %q", d1.Evening)
	}
	if d1.Description != "" {
		t.Errorf("expected no description for structured day, got %q", d1.Description)
	}
	d2 := it.Days[1]
	if d2.Day != 2 || d2.Title != "Belém" {
		t.Errorf("day 2: got day=%d title=%q", d2.Day, d2.Title)
	}
	if !slices.Equal(d2.Evening, []string{"Sunset at Miradouro"}) {
		t.Errorf("day 2 evening leaked past its block: got %q", d2.Evening)
	}

	pi := it.PracticalInfo
	if len(pi.Accommodations) != 2 || len(pi.Transportation) != 1 || len(pi.Costs) != 2 {
		t.Errorf("practical info counts: got %d/%d/%d", len(pi.Accommodations), len(pi.Transportation), len(pi.Costs))
	}
	if pi.Transportation[0] != "Public transportation: metro and trams" {
		t.Errorf("unexpected transportation item %q", pi.Transportation[0])
	}

	if it.Weather == nil || len(it.Weather.Days) != 2 {
		t.Fatalf("expected 2 weather days, got %+v", it.Weather)
	}

	if it.DestinationInfo == nil {
		t.Fatal("expected destination info")
	}
	if it.DestinationInfo.Country != "Portugal" || it.DestinationInfo.Continent != "Europe" {
		t.Errorf("destination: got %+v", *it.DestinationInfo)
	}

	wantTips := []string{
		"Carry a copy of your passport",
		"Download offline maps",
		"Greet locals with a smile",
		"Tipping is optional but appreciated",
	}
	if !slices.Equal(it.TravelTips, wantTips) {
		t.Errorf("tips: expected %q, got %q", wantTips, it.TravelTips)
	}
}

func TestParse_Idempotent(t *testing.T) {
	a := Parse(sampleProposal)
	b := Parse(sampleProposal)
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical results for identical input")
	}
}

func TestParse_TitleDefault(t *testing.T) {
	it := Parse("no heading here")
	if it.Title != DefaultTitle {
		t.Errorf("expected title %q, got %q", DefaultTitle, it.Title)
	}
}

func TestParse_TitleNeedsExactlyOneHash(t *testing.T) {
	it := Parse("## Not a title\n\n# Real Title\n")
	if it.Title != "Real Title" {
		t.Errorf("expected %q, got %q", "Real Title", it.Title)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\n  "} {
		it := Parse(in)
		if it.Title != DefaultTitle {
			t.Errorf("input %q: expected default title, got %q", in, it.Title)
		}
		if it.Overview != "" || len(it.Days) != 0 || len(it.TravelTips) != 0 {
			t.Errorf("input %q: expected empty fields, got %+v", in, it)
		}
		if it.Weather != nil || it.DestinationInfo != nil {
			t.Errorf("input %q: expected no optional blocks", in)
		}
		if it.Days == nil || it.PracticalInfo.Costs == nil {
			t.Errorf("input %q: expected non-nil empty slices", in)
		}
	}
}

func TestParse_AbsentOptionalSections(t *testing.T) {
	it := Parse("# Title\n\n## Day 1\n### Morning\n- Walk\n")
	if it.Weather != nil {
		t.Errorf("expected nil weather, got %+v", it.Weather)
	}
	if it.DestinationInfo != nil {
		t.Errorf("expected nil destination info, got %+v", it.DestinationInfo)
	}
	if it.Overview != "" {
		t.Errorf("expected empty overview without an Overview heading, got %q", it.Overview)
	}

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"weather"`) || strings.Contains(string(data), `"destinationInfo"`) {
		t.Errorf("expected optional blocks to be omitted from JSON, got %s", data)
	}
}

func TestParse_OverviewNeedsBothBoundaries(t *testing.T) {
	it := Parse("# T\n\n## Overview\nSomething nice.\n\n## Practical Information\n")
	if it.Overview != "" {
		t.Errorf("expected empty overview without a day heading, got %q", it.Overview)
	}
}

func TestParse_EmptyWeatherSectionIsOmitted(t *testing.T) {
	it := Parse("# T\n\n## Weather Forecast\n\n## Travel Tips\n- Pack light\n")
	if it.Weather != nil {
		t.Errorf("expected nil weather for empty section, got %+v", it.Weather)
	}
	if !slices.Equal(it.TravelTips, []string{"Pack light"}) {
		t.Errorf("expected flat tips list, got %q", it.TravelTips)
	}
}

func TestParse_WeatherLine(t *testing.T) {
	it := Parse("## Weather Forecast\n- 2025-05-10: 22.5°C to 28.1°C, Precipitation: 0.0mm\n- Sunday\n")
	if it.Weather == nil || len(it.Weather.Days) != 2 {
		t.Fatalf("expected 2 weather days, got %+v", it.Weather)
	}
	w := it.Weather.Days[0]
	if w.Date != "2025-05-10" {
		t.Errorf("expected date %q, got %q", "2025-05-10", w.Date)
	}
	if w.Details != "22.5°C to 28.1°C, Precipitation: 0.0mm" {
		t.Errorf("unexpected details %q", w.Details)
	}
	if w.TempMin == nil || *w.TempMin != 22.5 || w.TempMax == nil || *w.TempMax != 28.1 {
		t.Errorf("unexpected temperature range %v..%v", w.TempMin, w.TempMax)
	}
	if w.Precipitation == nil || *w.Precipitation != 0 {
		t.Errorf("unexpected precipitation %v", w.Precipitation)
	}
	if w.Condition() != ConditionSunny {
		t.Errorf("expected sunny, got %s", w.Condition())
	}

	bare := it.Weather.Days[1]
	if bare.Date != "Sunday" || bare.Details != "" {
		t.Errorf("expected date-only line, got %+v", bare)
	}
}

func TestWeatherDay_Condition(t *testing.T) {
	heavy := 12.0
	tests := []struct {
		day  WeatherDay
		want string
	}{
		{WeatherDay{Details: "Clear skies"}, ConditionSunny},
		{WeatherDay{Details: "Light rain in the afternoon"}, ConditionRainy},
		{WeatherDay{Details: "Cloudy"}, ConditionCloudy},
		{WeatherDay{Details: "20°C to 25°C", Precipitation: &heavy}, ConditionRainy},
	}
	for _, tt := range tests {
		if got := tt.day.Condition(); got != tt.want {
			t.Errorf("Condition(%q) = %s, want %s", tt.day.Details, got, tt.want)
		}
	}
}

func TestParse_DestinationPartial(t *testing.T) {
	it := Parse("## Destination Information\nCountry: Japan\n")
	if it.DestinationInfo == nil {
		t.Fatal("expected destination info when heading is present")
	}
	if it.DestinationInfo.Country != "Japan" || it.DestinationInfo.Continent != "" {
		t.Errorf("unexpected destination %+v", *it.DestinationInfo)
	}

	empty := Parse("## Destination Information\n\nNothing structured.\n")
	if empty.DestinationInfo == nil || *empty.DestinationInfo != (DestinationInfo{}) {
		t.Errorf("expected empty destination info, got %+v", empty.DestinationInfo)
	}
}

func TestParse_MalformedHeadingIsAbsent(t *testing.T) {
	it := Parse("# T\n\n### Weather Forecast\n- 2025-05-10: sunny\n\n##Practical Information\n### Estimated Costs\n- $10\n")
	if it.Weather != nil {
		t.Errorf("expected wrong-level weather heading to be ignored, got %+v", it.Weather)
	}
	if len(it.PracticalInfo.Costs) != 0 {
		t.Errorf("expected heading without space to be ignored, got %q", it.PracticalInfo.Costs)
	}
}

func TestParse_CRLF(t *testing.T) {
	it := Parse(strings.ReplaceAll(sampleProposal, "\n", "\r\n"))
	if len(it.Days) != 2 || it.Title != "2-Day Itinerary for Lisbon" {
		t.Fatalf("expected CRLF input to parse like LF, got title=%q days=%d", it.Title, len(it.Days))
	}
	if it.Days[0].Morning[0] != "Breakfast at Café Central" {
		t.Errorf("expected trimmed item, got %q", it.Days[0].Morning[0])
	}
}
