package itinerary

import (
	"regexp"
	"strings"
)

var numberedRe = regexp.MustCompile(`^\d+\.\s+`)

// ExtractItems flattens a section body into plain-text items. Bullet lines
// ("- " or "* ") win; failing that, numbered lines ("1. "); failing that,
// every non-blank line is an item. Marker prefixes are stripped, items are
// trimmed, empty items are dropped and document order is kept.
func ExtractItems(text string) []string {
	lines := strings.Split(text, "\n")

	if items := collect(lines, bulletItem); len(items) > 0 {
		return items
	}
	if items := collect(lines, numberedItem); len(items) > 0 {
		return items
	}
	return collect(lines, func(line string) (string, bool) {
		line = strings.TrimSpace(line)
		if line == "" {
			return "", false
		}
		return stripMarker(line), true
	})
}

func collect(lines []string, match func(string) (string, bool)) []string {
	var out []string
	for _, line := range lines {
		item, ok := match(line)
		if !ok || item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func bulletItem(line string) (string, bool) {
	t := strings.TrimLeft(line, " \t")
	for _, m := range []string{"- ", "* "} {
		if strings.HasPrefix(t, m) {
			return strings.TrimSpace(t[len(m):]), true
		}
	}
	return "", false
}

func numberedItem(line string) (string, bool) {
	t := strings.TrimLeft(line, " \t")
	loc := numberedRe.FindStringIndex(t)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(t[loc[1]:]), true
}

// stripMarker removes a single leading list marker from a trimmed line.
func stripMarker(line string) string {
	if item, ok := bulletItem(line); ok {
		return item
	}
	if item, ok := numberedItem(line); ok {
		return item
	}
	return line
}
