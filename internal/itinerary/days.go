package itinerary

import (
	"strconv"
	"strings"
)

// Headings that close a day block besides the next "## Day".
var dayTerminators = []string{
	"Practical",
	"Travel Tips",
	"Weather",
	"Destination Information",
}

// Time-of-day sub-headings, in output order.
const (
	partMorning   = "Morning"
	partAfternoon = "Afternoon"
	partEvening   = "Evening"
)

var dayParts = []string{partMorning, partAfternoon, partEvening}

// ParseDays finds every "## Day" block in doc. Day numbers are assigned by
// occurrence, so "Day 1, Day 3" becomes days 1 and 2; the printed number is
// kept in DayPlan.Heading. When a block has no Morning, Afternoon or
// Evening items at all, its text becomes Description and its items are
// spread over the three parts in ceil(n/3) slices.
func ParseDays(doc string) []DayPlan {
	starts := dayStarts(doc)
	days := make([]DayPlan, 0, len(starts))
	for i, start := range starts {
		end := dayEnd(doc, start)
		days = append(days, parseDay(doc[start:end], i+1))
	}
	return days
}

// dayStarts returns the offsets of "## Day" heading lines.
func dayStarts(doc string) []int {
	var out []int
	for _, pos := range headings(doc, 2) {
		if isDayHeading(headingText(doc[pos:lineEnd(doc, pos)])) {
			out = append(out, pos)
		}
	}
	return out
}

// isDayHeading accepts "Day", "Day 2", "Day 2: x" and "Day: x" but not
// words that merely start with Day.
func isDayHeading(text string) bool {
	rest, ok := strings.CutPrefix(text, "Day")
	if !ok {
		return false
	}
	return rest == "" || strings.ContainsAny(rest[:1], " \t:0123456789")
}

// dayEnd is the offset of the first closing level-2 heading after start.
func dayEnd(doc string, start int) int {
	for pos := lineEnd(doc, start); pos < len(doc); {
		end := lineEnd(doc, pos)
		if headingLevel(doc[pos:end]) == 2 {
			text := headingText(doc[pos:end])
			if isDayHeading(text) {
				return pos
			}
			for _, t := range dayTerminators {
				if strings.HasPrefix(text, t) {
					return pos
				}
			}
		}
		pos = end
	}
	return len(doc)
}

func parseDay(block string, day int) DayPlan {
	headEnd := lineEnd(block, 0)
	number, title := splitDayHeading(headingText(block[:headEnd]))
	content := block[headEnd:]

	plan := DayPlan{
		Day:       day,
		Heading:   number,
		Title:     title,
		Morning:   partItems(content, partMorning),
		Afternoon: partItems(content, partAfternoon),
		Evening:   partItems(content, partEvening),
	}

	if len(plan.Morning) == 0 && len(plan.Afternoon) == 0 && len(plan.Evening) == 0 {
		plan.Description = strings.TrimSpace(content)
		if items := ExtractItems(content); len(items) > 0 {
			plan.Morning, plan.Afternoon, plan.Evening = thirds(items)
		}
	}
	return plan
}

// splitDayHeading parses "Day 2: Old Town" into (2, "Old Town"). A "###
// Morning" fragment swallowed into the heading text is cut off.
func splitDayHeading(text string) (int, string) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "Day"))

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	number := 0
	if digits > 0 {
		number, _ = strconv.Atoi(rest[:digits])
	}
	rest = strings.TrimSpace(rest[digits:])
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))

	if i := strings.Index(rest, "###"); i >= 0 {
		rest = strings.TrimSpace(rest[:i])
	}
	return number, rest
}

// partItems extracts the items under "### <part>", bounded by the next
// time-of-day heading or the end of the block.
func partItems(content, part string) []string {
	start := findHeading(content, part, 3, 0)
	if start < 0 {
		return []string{}
	}
	bodyStart := lineEnd(content, start)
	end := len(content)
	for _, other := range dayParts {
		if other == part {
			continue
		}
		if i := findHeading(content, other, 3, bodyStart); i >= 0 && i < end {
			end = i
		}
	}
	items := ExtractItems(content[bodyStart:end])
	if items == nil {
		return []string{}
	}
	return items
}

// thirds splits items into three consecutive runs of ceil(n/3).
func thirds(items []string) (morning, afternoon, evening []string) {
	third := (len(items) + 2) / 3
	a := min(third, len(items))
	b := min(2*third, len(items))
	return items[:a:a], items[a:b:b], items[b:]
}
