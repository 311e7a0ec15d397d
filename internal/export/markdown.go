// Package export renders parsed itineraries as markdown, HTML, Word and
// JSON documents.
package export

import (
	"fmt"
	"strings"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

// Markdown renders it in the proposal layout the parser reads, so that
// parsing the result yields the same days, practical info, weather,
// destination and tips.
func Markdown(it *itinerary.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Title)

	if it.Overview != "" {
		fmt.Fprintf(&b, "## %s\n%s\n\n", itinerary.HeadingOverview, it.Overview)
	}

	for _, d := range it.Days {
		if d.Title != "" {
			fmt.Fprintf(&b, "## Day %d: %s\n", d.Day, d.Title)
		} else {
			fmt.Fprintf(&b, "## Day %d\n", d.Day)
		}
		if len(d.Morning)+len(d.Afternoon)+len(d.Evening) == 0 {
			if d.Description != "" {
				fmt.Fprintf(&b, "%s\n", d.Description)
			}
			b.WriteString("\n")
			continue
		}
		writeList(&b, "### Morning", d.Morning)
		writeList(&b, "### Afternoon", d.Afternoon)
		writeList(&b, "### Evening", d.Evening)
		b.WriteString("\n")
	}

	p := it.PracticalInfo
	if len(p.Accommodations)+len(p.Transportation)+len(p.Costs) > 0 {
		fmt.Fprintf(&b, "## %s\n", itinerary.HeadingPractical)
		writeList(&b, "### "+itinerary.HeadingLodging, p.Accommodations)
		writeList(&b, "### "+itinerary.HeadingTransport, p.Transportation)
		writeList(&b, "### "+itinerary.HeadingCosts, p.Costs)
		b.WriteString("\n")
	}

	if it.Weather != nil && len(it.Weather.Days) > 0 {
		fmt.Fprintf(&b, "## %s\n", itinerary.HeadingWeather)
		for _, w := range it.Weather.Days {
			if w.Details != "" {
				fmt.Fprintf(&b, "- %s: %s\n", w.Date, w.Details)
			} else {
				fmt.Fprintf(&b, "- %s\n", w.Date)
			}
		}
		b.WriteString("\n")
	}

	if di := it.DestinationInfo; di != nil {
		fmt.Fprintf(&b, "## %s\n", itinerary.HeadingDestination)
		if di.Country != "" {
			fmt.Fprintf(&b, "Country: %s\n", di.Country)
		}
		if di.Continent != "" {
			fmt.Fprintf(&b, "Continent: %s\n", di.Continent)
		}
		b.WriteString("\n")
	}

	if len(it.TravelTips) > 0 {
		fmt.Fprintf(&b, "## %s\n", itinerary.HeadingTips)
		writeList(&b, "### General", it.TravelTips)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// writeList writes heading and one bullet per item; nothing when items is
// empty.
func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading)
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
