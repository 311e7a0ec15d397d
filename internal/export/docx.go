package export

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

// Run sizes in half-points.
var headingSizes = map[int]string{1: "36", 2: "30", 3: "26"}

type docWriter struct {
	doc *docx.Docx
}

func (w docWriter) heading(level int, text string) {
	w.doc.AddParagraph().
		Style(fmt.Sprintf("Heading%d", level)).
		AddText(text).Bold().Size(headingSizes[level])
}

func (w docWriter) text(s string) {
	w.doc.AddParagraph().AddText(s)
}

func (w docWriter) list(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	w.heading(3, heading)
	for _, item := range items {
		w.doc.AddParagraph().Style("ListBullet").AddText("- " + item)
	}
}

// DOCX writes it as a Word document. Headings carry HeadingN paragraph
// styles and list items the ListBullet style, so the document loads back
// through the docx source loader.
func DOCX(it *itinerary.Itinerary, out io.Writer) error {
	w := docWriter{doc: docx.New().WithDefaultTheme()}

	w.heading(1, it.Title)
	if it.Overview != "" {
		w.heading(2, itinerary.HeadingOverview)
		w.text(it.Overview)
	}

	for _, d := range it.Days {
		title := fmt.Sprintf("Day %d", d.Day)
		if d.Title != "" {
			title += ": " + d.Title
		}
		w.heading(2, title)
		if len(d.Morning)+len(d.Afternoon)+len(d.Evening) == 0 && d.Description != "" {
			w.text(d.Description)
			continue
		}
		w.list("Morning", d.Morning)
		w.list("Afternoon", d.Afternoon)
		w.list("Evening", d.Evening)
	}

	p := it.PracticalInfo
	if len(p.Accommodations)+len(p.Transportation)+len(p.Costs) > 0 {
		w.heading(2, itinerary.HeadingPractical)
		w.list(itinerary.HeadingLodging, p.Accommodations)
		w.list(itinerary.HeadingTransport, p.Transportation)
		w.list(itinerary.HeadingCosts, p.Costs)
	}

	if it.Weather != nil && len(it.Weather.Days) > 0 {
		w.heading(2, itinerary.HeadingWeather)
		for _, day := range it.Weather.Days {
			line := day.Date
			if day.Details != "" {
				line += ": " + day.Details
			}
			w.doc.AddParagraph().Style("ListBullet").AddText("- " + line)
		}
	}

	if di := it.DestinationInfo; di != nil {
		w.heading(2, itinerary.HeadingDestination)
		if di.Country != "" {
			w.text("Country: " + di.Country)
		}
		if di.Continent != "" {
			w.text("Continent: " + di.Continent)
		}
	}

	if len(it.TravelTips) > 0 {
		w.heading(2, itinerary.HeadingTips)
		w.list("General", it.TravelTips)
	}

	if _, err := w.doc.WriteTo(out); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
