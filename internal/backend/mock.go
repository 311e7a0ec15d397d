package backend

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDestination = "Paris"
	defaultDays        = 7
	defaultTravelers   = "2"
	defaultBudget      = "$3000"
	maxMockDays        = 14
)

var (
	destinationRe = regexp.MustCompile(`\b(?:to|in|for|visit|visiting)\s+([A-Z][A-Za-z ]*?)\s*(?:\bfor\b|\bin\b|\bwith\b|\.|,|!|\n|$)`)
	durationRe    = regexp.MustCompile(`(?i)(\d+)\s*-?\s*(day|week)s?\b`)
	travelersRe   = regexp.MustCompile(`(?i)\b(?:family|group|party) of (\d+)|\b(\d+)\s+(?:people|persons|travell?ers|adults|guests)\b`)
	budgetRe      = regexp.MustCompile(`(?i)budget.*?(\$?\d[\d,]*)`)
)

// MockClient answers requests locally with a rule-based extraction and a
// generated proposal. It is used for offline runs and tests.
type MockClient struct {
	// Delay simulates backend processing time.
	Delay time.Duration
}

// Process extracts trip parameters with simple patterns and builds a
// deterministic proposal for them.
func (m *MockClient) Process(ctx context.Context, request string) (*Response, error) {
	if strings.TrimSpace(request) == "" {
		return nil, ErrEmptyRequest
	}
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	info := Extract(request)
	days := durationDays(info.Duration)
	price := budgetAmount(info.Budget)
	interests := strings.Split(info.Interests, ", ")

	return &Response{
		ExtractedInfo: info,
		Packages: []Package{
			{
				Name:        info.Destination + " Explorer",
				Location:    info.Destination,
				Description: fmt.Sprintf("Discover the best of %s with this comprehensive package.", info.Destination),
				Activities:  interests,
				Price:       price,
			},
			{
				Name:        info.Destination + " Deluxe Experience",
				Location:    info.Destination,
				Description: fmt.Sprintf("Luxury travel package for an unforgettable %s experience.", info.Destination),
				Activities:  append(append([]string{}, interests...), "premium dining", "exclusive tours"),
				Price:       price * 1.5,
			},
		},
		Proposal: MockProposal(info.Destination, days, interests),
		Timings: Timings{
			ExtractionMs: 450,
			GenerationMs: 1200,
			TotalMs:      1800,
		},
	}, nil
}

// Extract pulls trip parameters out of a free-text request, filling in
// defaults for anything it cannot find.
func Extract(request string) ExtractedInfo {
	info := ExtractedInfo{
		Destination: defaultDestination,
		Duration:    fmt.Sprintf("%d days", defaultDays),
		Travelers:   defaultTravelers,
		Budget:      defaultBudget,
	}
	if m := destinationRe.FindStringSubmatch(request); m != nil {
		info.Destination = strings.TrimSpace(m[1])
	}
	if m := durationRe.FindStringSubmatch(request); m != nil {
		n, _ := strconv.Atoi(m[1])
		if strings.EqualFold(m[2], "week") {
			n *= 7
		}
		info.Duration = fmt.Sprintf("%d days", n)
	}
	if m := travelersRe.FindStringSubmatch(request); m != nil {
		info.Travelers = m[1] + m[2]
	}
	if m := budgetRe.FindStringSubmatch(request); m != nil {
		info.Budget = m[1]
	}

	lower := strings.ToLower(request)
	switch {
	case strings.Contains(lower, "museum"):
		info.Interests = "museums, history, culture"
	case strings.Contains(lower, "mountain"):
		info.Interests = "hiking, nature, adventure"
	case strings.Contains(lower, "beach"):
		info.Interests = "beaches, swimming, relaxation"
	default:
		info.Interests = "sightseeing, local cuisine"
	}
	switch {
	case strings.Contains(lower, "beach"):
		info.TravelType = "beach vacation"
	case strings.Contains(lower, "mountain"):
		info.TravelType = "mountain adventure"
	default:
		info.TravelType = "cultural exploration"
	}
	return info
}

func durationDays(duration string) int {
	n, err := strconv.Atoi(strings.Fields(duration + " ")[0])
	if err != nil || n < 1 {
		return defaultDays
	}
	return min(n, maxMockDays)
}

func budgetAmount(budget string) float64 {
	digits := strings.NewReplacer("$", "", ",", "").Replace(budget)
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}

var (
	cafes         = []string{"Soleil", "Central", "Riverside", "Belvedere", "Panorama"}
	adjectives    = []string{"famous", "historic", "renowned", "popular", "must-see"}
	landmarks     = []string{"Museum", "Park", "Cathedral", "Market", "Palace"}
	districts     = []string{"Old Town", "Historic District", "Cultural Quarter", "City Center", "Waterfront"}
	lunchSpots    = []string{"Restaurant Le Chef", "Local Bistro", "Traditional Eatery", "Gourmet Kitchen", "Seaside Dining"}
	pastimes      = []string{"Shopping at local boutiques", "Relaxing at a café", "Exploring hidden neighborhoods", "Participating in a local workshop", "Visiting an art gallery"}
	dinnerStyles  = []string{"Michelin-starred", "highly-rated", "authentic", "charming", "popular"}
	restaurants   = []string{"La Vue", "The Garden", "Seaside", "Azure", "Panorama"}
	nightlife     = []string{"Evening walk along the promenade", "Cultural performance at the theater", "Night tour of illuminated landmarks", "Wine tasting experience", "Local music performance"}
	tippingRules  = []string{"customary", "optional but appreciated", "not expected", "typically included"}
	mockForecasts = []string{
		"2025-05-10: 22.5°C to 28.1°C, Precipitation: 0.0mm",
		"2025-05-11: 21.8°C to 27.5°C, Precipitation: 0.0mm",
		"2025-05-12: 22.0°C to 29.3°C, Precipitation: 0.0mm",
		"2025-05-13: 20.5°C to 26.8°C, Precipitation: 2.5mm",
		"2025-05-14: 21.3°C to 27.2°C, Precipitation: 0.5mm",
	}
)

// MockProposal renders a markdown proposal in the layout the itinerary
// parser understands.
func MockProposal(destination string, days int, interests []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d-Day Itinerary for %s\n\n", days, destination)

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "This personalized itinerary will help you explore the best of %s. ", destination)
	fmt.Fprintf(&b, "You'll experience %s, and discover the local culture.\n\n", strings.Join(interests, ", "))

	for i := 1; i <= days; i++ {
		k := i % 5
		fmt.Fprintf(&b, "## Day %d\n\n", i)

		b.WriteString("### Morning (8:00 AM - 12:00 PM)\n")
		fmt.Fprintf(&b, "- Breakfast at Café %s\n", cafes[k])
		fmt.Fprintf(&b, "- Visit the %s %s %s\n", adjectives[k], destination, landmarks[k])
		fmt.Fprintf(&b, "- Guided tour of the %s\n\n", districts[k])

		b.WriteString("### Afternoon (12:00 PM - 5:00 PM)\n")
		fmt.Fprintf(&b, "- Lunch at %s\n", lunchSpots[k])
		fmt.Fprintf(&b, "- %s\n", pastimes[k])
		if len(interests) > 0 {
			if interest := interests[i%len(interests)]; interest != "" {
				fmt.Fprintf(&b, "- %s experience\n", capitalize(interest))
			}
		}
		b.WriteString("\n")

		b.WriteString("### Evening (5:00 PM - 10:00 PM)\n")
		fmt.Fprintf(&b, "- Dinner at %s restaurant %s\n", dinnerStyles[k], restaurants[k])
		fmt.Fprintf(&b, "- %s\n\n", nightlife[k])
	}

	b.WriteString("## Practical Information\n\n")
	b.WriteString("### Recommended Accommodations\n")
	fmt.Fprintf(&b, "- Hotel %s Plaza - 4-star centrally located hotel\n", destination)
	fmt.Fprintf(&b, "- %s Boutique Suites - Charming mid-range option\n", destination)
	fmt.Fprintf(&b, "- The %s Grand Resort - Luxury option with excellent amenities\n\n", destination)

	b.WriteString("### Transportation Options\n")
	b.WriteString("- Public transportation: Efficient metro and bus system\n")
	b.WriteString("- Taxi services: Readily available throughout the city\n")
	b.WriteString("- Rental car: Recommended for exploring the surrounding areas\n\n")

	b.WriteString("### Estimated Costs\n")
	b.WriteString("- Accommodations: $100-300 per night depending on luxury level\n")
	b.WriteString("- Meals: $30-80 per person per day\n")
	b.WriteString("- Attractions: $15-25 per attraction\n")
	b.WriteString("- Local transportation: $10-20 per day\n\n")

	b.WriteString("## Weather Forecast\n")
	for _, f := range mockForecasts {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\n")

	b.WriteString("## Travel Tips\n\n")
	b.WriteString("### General Tips\n")
	b.WriteString("- Carry a photocopy of your passport and store the original in your hotel safe\n")
	b.WriteString("- Download offline maps before your trip\n")
	b.WriteString("- Learn a few basic phrases in the local language\n")
	b.WriteString("- Carry a reusable water bottle to stay hydrated\n\n")

	b.WriteString("### Local Customs\n")
	b.WriteString("- Greet locals with a smile and a nod\n")
	fmt.Fprintf(&b, "- Tipping is %s\n", tippingRules[len(destination)%len(tippingRules)])
	b.WriteString("- Dress modestly when visiting religious sites\n")

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
