// Package itinerary turns a markdown travel proposal into a structured
// itinerary. Parsing is pure: the same input always yields the same output,
// absent sections produce empty defaults, and nothing here returns an error.
package itinerary

import "strings"

// DefaultTitle is used when the proposal has no "# " heading.
const DefaultTitle = "Travel Itinerary"

// Itinerary is the structured form of a proposal.
type Itinerary struct {
	Title           string           `json:"title"`
	Overview        string           `json:"overview"`
	Days            []DayPlan        `json:"days"`
	PracticalInfo   PracticalInfo    `json:"practicalInfo"`
	Weather         *WeatherBlock    `json:"weather,omitempty"`
	DestinationInfo *DestinationInfo `json:"destinationInfo,omitempty"`
	TravelTips      []string         `json:"travelTips"`
}

// DayPlan is one "## Day" block. Day is the 1-based occurrence index of the
// heading; Heading is the number literally printed after "Day" (0 if none).
type DayPlan struct {
	Day         int      `json:"day"`
	Heading     int      `json:"headingNumber,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Morning     []string `json:"morning"`
	Afternoon   []string `json:"afternoon"`
	Evening     []string `json:"evening"`
}

// ShortTitle is the part of the title after the first colon, used for tab
// labels such as "Arrival: Old Town" -> "Old Town".
func (d DayPlan) ShortTitle() string {
	if i := strings.Index(d.Title, ":"); i >= 0 {
		return strings.TrimSpace(d.Title[i+1:])
	}
	return d.Title
}

// Activities returns morning, afternoon and evening items in order.
func (d DayPlan) Activities() []string {
	out := make([]string, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening))
	out = append(out, d.Morning...)
	out = append(out, d.Afternoon...)
	return append(out, d.Evening...)
}

// PracticalInfo holds the "## Practical Information" sub-sections.
type PracticalInfo struct {
	Accommodations []string `json:"accommodations"`
	Transportation []string `json:"transportation"`
	Costs          []string `json:"costs"`
}

// WeatherBlock is present only when the forecast section yielded lines.
type WeatherBlock struct {
	Days []WeatherDay `json:"days"`
}

// WeatherDay is one forecast line split on its first colon. The numeric
// fields are filled when the details follow the "N°C to M°C, Precipitation:
// Xmm" convention.
type WeatherDay struct {
	Date          string   `json:"date"`
	Details       string   `json:"details"`
	TempMin       *float64 `json:"tempMin,omitempty"`
	TempMax       *float64 `json:"tempMax,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
}

// Weather conditions reported by WeatherDay.Condition.
const (
	ConditionSunny  = "sunny"
	ConditionCloudy = "cloudy"
	ConditionRainy  = "rainy"
)

// Condition classifies the day for icon selection.
func (w WeatherDay) Condition() string {
	if w.Precipitation != nil && *w.Precipitation > 5 {
		return ConditionRainy
	}
	d := strings.ToLower(w.Details)
	switch {
	case strings.Contains(d, "rain"), strings.Contains(d, "shower"), strings.Contains(d, "storm"):
		return ConditionRainy
	case strings.Contains(d, "cloud"), strings.Contains(d, "overcast"):
		return ConditionCloudy
	}
	return ConditionSunny
}

// DestinationInfo is present whenever a "## Destination Information"
// heading exists, even if neither field could be read.
type DestinationInfo struct {
	Country   string `json:"country,omitempty"`
	Continent string `json:"continent,omitempty"`
}

func newItinerary() *Itinerary {
	return &Itinerary{
		Title: DefaultTitle,
		Days:  []DayPlan{},
		PracticalInfo: PracticalInfo{
			Accommodations: []string{},
			Transportation: []string{},
			Costs:          []string{},
		},
		TravelTips: []string{},
	}
}
