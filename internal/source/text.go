package source

import (
	"bufio"
	"io"
	"strings"
)

// TextLoader handles plain text proposals. Lines are kept as-is apart from
// trailing whitespace, and runs of blank lines collapse to one.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	blank := false
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if first {
			line = strings.TrimPrefix(line, string(utf8BOM))
		}
		if line == "" {
			blank = !first
			continue
		}
		if blank {
			sb.WriteString("\n")
			blank = false
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		first = false
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
