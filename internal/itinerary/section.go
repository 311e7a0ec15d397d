package itinerary

import "strings"

// Slice returns the body of the first section whose heading has exactly
// level hashes and whose text starts with heading. The body excludes the
// heading line and runs to the next heading of the same or a higher level
// (fewer or equal hashes), or to the end of doc. Missing sections yield "".
func Slice(doc, heading string, level int) string {
	body, _ := Lookup(doc, heading, level)
	return body
}

// SliceWithHeading is Slice with the heading line itself included.
func SliceWithHeading(doc, heading string, level int) string {
	start := findHeading(doc, heading, level, 0)
	if start < 0 {
		return ""
	}
	return doc[start:nextHeading(doc, lineEnd(doc, start), level)]
}

// Lookup is Slice that also reports whether the heading was found, so an
// empty section can be told apart from a missing one.
func Lookup(doc, heading string, level int) (string, bool) {
	start := findHeading(doc, heading, level, 0)
	if start < 0 {
		return "", false
	}
	bodyStart := lineEnd(doc, start)
	return doc[bodyStart:nextHeading(doc, bodyStart, level)], true
}

// headingLevel returns the number of leading hashes when line is an ATX
// heading ("#".."######" followed by a space or end of line), otherwise 0.
func headingLevel(line string) int {
	line = strings.TrimRight(line, "\r\n")
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	return n
}

// headingText is the text after the hashes of a heading line.
func headingText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// findHeading returns the offset of the first line at or after from that is
// a level-hash heading whose text starts with text. Matching is literal and
// case-sensitive. Returns -1 when absent.
func findHeading(doc, text string, level, from int) int {
	for pos := from; pos < len(doc); {
		end := lineEnd(doc, pos)
		line := doc[pos:end]
		if headingLevel(line) == level && strings.HasPrefix(headingText(line), text) {
			return pos
		}
		pos = end
	}
	return -1
}

// nextHeading returns the offset of the first line at or after from that is
// a heading of level maxLevel or higher, or len(doc).
func nextHeading(doc string, from, maxLevel int) int {
	for pos := from; pos < len(doc); {
		end := lineEnd(doc, pos)
		if l := headingLevel(doc[pos:end]); l > 0 && l <= maxLevel {
			return pos
		}
		pos = end
	}
	return len(doc)
}

// lineEnd returns the offset just past the newline ending the line that
// starts at pos, or len(doc) for the last line.
func lineEnd(doc string, pos int) int {
	if i := strings.IndexByte(doc[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(doc)
}

// headings lists the offsets of every level-hash heading line in doc.
func headings(doc string, level int) []int {
	var out []int
	for pos := 0; pos < len(doc); {
		end := lineEnd(doc, pos)
		if headingLevel(doc[pos:end]) == level {
			out = append(out, pos)
		}
		pos = end
	}
	return out
}
