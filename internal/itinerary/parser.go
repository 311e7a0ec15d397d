package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

// Section headings of the proposal convention.
const (
	HeadingOverview    = "Overview"
	HeadingPractical   = "Practical Information"
	HeadingLodging     = "Recommended Accommodations"
	HeadingTransport   = "Transportation Options"
	HeadingCosts       = "Estimated Costs"
	HeadingWeather     = "Weather Forecast"
	HeadingDestination = "Destination Information"
	HeadingTips        = "Travel Tips"
)

var (
	titleRe     = regexp.MustCompile(`(?m)^# (.*)$`)
	countryRe   = regexp.MustCompile(`(?m)^(?:[-*] )?Country: *(.*?)\s*$`)
	continentRe = regexp.MustCompile(`(?m)^(?:[-*] )?Continent: *(.*?)\s*$`)
	tempRangeRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*°C to (-?\d+(?:\.\d+)?)\s*°C`)
	precipRe    = regexp.MustCompile(`Precipitation: *(\d+(?:\.\d+)?)\s*mm`)
)

// Parse extracts an Itinerary from a proposal. Every field is computed
// independently from markdown; missing or malformed sections leave their
// defaults in place.
func Parse(markdown string) *Itinerary {
	it := newItinerary()
	if strings.TrimSpace(markdown) == "" {
		return it
	}
	doc := strings.ReplaceAll(markdown, "\r\n", "\n")

	if title := parseTitle(doc); title != "" {
		it.Title = title
	}
	it.Overview = parseOverview(doc)
	it.Days = ParseDays(doc)
	it.PracticalInfo = parsePractical(doc)
	it.Weather = parseWeather(doc)
	it.DestinationInfo = parseDestination(doc)
	it.TravelTips = parseTips(doc)
	return it
}

func parseTitle(doc string) string {
	m := titleRe.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseOverview returns the text between "## Overview" and the first day
// heading. If either is missing, or they are out of order, it is empty.
func parseOverview(doc string) string {
	start := findHeading(doc, HeadingOverview, 2, 0)
	days := dayStarts(doc)
	if start < 0 || len(days) == 0 || days[0] < start {
		return ""
	}
	return strings.TrimSpace(doc[lineEnd(doc, start):days[0]])
}

func parsePractical(doc string) PracticalInfo {
	section := Slice(doc, HeadingPractical, 2)
	return PracticalInfo{
		Accommodations: nonNil(ExtractItems(Slice(section, HeadingLodging, 3))),
		Transportation: nonNil(ExtractItems(Slice(section, HeadingTransport, 3))),
		Costs:          nonNil(ExtractItems(Slice(section, HeadingCosts, 3))),
	}
}

func parseWeather(doc string) *WeatherBlock {
	items := ExtractItems(Slice(doc, HeadingWeather, 2))
	if len(items) == 0 {
		return nil
	}
	block := &WeatherBlock{Days: make([]WeatherDay, 0, len(items))}
	for _, item := range items {
		block.Days = append(block.Days, parseWeatherLine(item))
	}
	return block
}

// parseWeatherLine splits "2025-05-10: 22.5°C to 28.1°C, Precipitation:
// 0.0mm" on its first colon.
func parseWeatherLine(line string) WeatherDay {
	date, details, _ := strings.Cut(line, ":")
	w := WeatherDay{
		Date:    strings.TrimSpace(date),
		Details: strings.TrimSpace(details),
	}
	if m := tempRangeRe.FindStringSubmatch(w.Details); m != nil {
		w.TempMin = parseFloat(m[1])
		w.TempMax = parseFloat(m[2])
	}
	if m := precipRe.FindStringSubmatch(w.Details); m != nil {
		w.Precipitation = parseFloat(m[1])
	}
	return w
}

func parseDestination(doc string) *DestinationInfo {
	section, ok := Lookup(doc, HeadingDestination, 2)
	if !ok {
		return nil
	}
	info := &DestinationInfo{}
	if m := countryRe.FindStringSubmatch(section); m != nil {
		info.Country = m[1]
	}
	if m := continentRe.FindStringSubmatch(section); m != nil {
		info.Continent = m[1]
	}
	return info
}

// parseTips flattens every "###" category under "## Travel Tips". A tips
// section without categories is read as one flat list.
func parseTips(doc string) []string {
	section := Slice(doc, HeadingTips, 2)
	cats := headings(section, 3)
	if len(cats) == 0 {
		return nonNil(ExtractItems(section))
	}
	tips := []string{}
	for _, pos := range cats {
		body := lineEnd(section, pos)
		tips = append(tips, ExtractItems(section[body:nextHeading(section, body, 3)])...)
	}
	return tips
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
