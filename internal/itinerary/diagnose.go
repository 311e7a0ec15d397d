package itinerary

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Warning codes reported by Diagnose.
const (
	WarnMissingTitle      = "missing_title"
	WarnDayNumberMismatch = "day_number_mismatch"
	WarnUnstructuredDay   = "unstructured_day"
	WarnNoDays            = "no_days"
	WarnWeatherNoDetails  = "weather_without_details"
)

// Warning is a data-quality note about a proposal. Warnings never change
// what Parse returns.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Day     int    `json:"day,omitempty"`
}

type heading struct {
	level int
	text  string
}

// Diagnose reports structural problems in a proposal: printed day numbers
// that disagree with their position, days without time-of-day sections,
// a missing title and forecast lines without details. Day checks run over
// the same spans ParseDays uses.
func Diagnose(markdown string) []Warning {
	var warnings []Warning
	doc := strings.ReplaceAll(markdown, "\r\n", "\n")

	if parseTitle(doc) == "" {
		msg := fmt.Sprintf("no \"# \" heading; title defaults to %q", DefaultTitle)
		if t := firstTitle(outline([]byte(doc))); t != "" {
			msg = fmt.Sprintf("heading %q is not an ATX \"# \" heading; title defaults to %q", t, DefaultTitle)
		}
		warnings = append(warnings, Warning{Code: WarnMissingTitle, Message: msg})
	}

	days := ParseDays(doc)
	for _, d := range days {
		if d.Heading != 0 && d.Heading != d.Day {
			warnings = append(warnings, Warning{
				Code:    WarnDayNumberMismatch,
				Message: fmt.Sprintf("heading \"Day %d\" is day %d by position", d.Heading, d.Day),
				Day:     d.Day,
			})
		}
		if unstructured(d) {
			warnings = append(warnings, Warning{
				Code:    WarnUnstructuredDay,
				Message: fmt.Sprintf("day %d has no Morning/Afternoon/Evening sections; activities were split evenly", d.Day),
				Day:     d.Day,
			})
		}
	}
	if len(days) == 0 {
		warnings = append(warnings, Warning{Code: WarnNoDays, Message: "no \"## Day\" sections found"})
	}

	if w := parseWeather(doc); w != nil {
		for _, d := range w.Days {
			if d.Details == "" {
				warnings = append(warnings, Warning{
					Code:    WarnWeatherNoDetails,
					Message: fmt.Sprintf("forecast line %q has no details after a colon", d.Date),
				})
			}
		}
	}
	return warnings
}

// unstructured reports whether ParseDays fell back to splitting the day's
// text, which it does only when no time-of-day section had items.
func unstructured(d DayPlan) bool {
	return d.Description != "" ||
		len(d.Morning)+len(d.Afternoon)+len(d.Evening) == 0
}

// firstTitle returns the first level-1 heading goldmark finds, which may be
// a setext heading the line scanner does not treat as a title.
func firstTitle(hs []heading) string {
	for _, h := range hs {
		if h.level == 1 && h.text != "" {
			return h.text
		}
	}
	return ""
}

// outline returns the ATX and setext headings of src in document order.
func outline(src []byte) []heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var hs []heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		var buf bytes.Buffer
		lines := h.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		hs = append(hs, heading{level: h.Level, text: strings.TrimSpace(buf.String())})
	}
	return hs
}
