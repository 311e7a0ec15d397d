package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

// Format describes one export target.
type Format struct {
	Name        string
	ContentType string
	Extension   string
	Write       func(it *itinerary.Itinerary, w io.Writer) error
}

var formats = map[string]Format{
	"md": {
		Name:        "md",
		ContentType: "text/markdown; charset=utf-8",
		Extension:   ".md",
		Write: func(it *itinerary.Itinerary, w io.Writer) error {
			_, err := io.WriteString(w, Markdown(it))
			return err
		},
	},
	"html": {
		Name:        "html",
		ContentType: "text/html; charset=utf-8",
		Extension:   ".html",
		Write: func(it *itinerary.Itinerary, w io.Writer) error {
			page, err := HTML(it)
			if err != nil {
				return err
			}
			_, err = w.Write(page)
			return err
		},
	},
	"docx": {
		Name:        "docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Extension:   ".docx",
		Write:       DOCX,
	},
	"json": {
		Name:        "json",
		ContentType: "application/json",
		Extension:   ".json",
		Write: func(it *itinerary.Itinerary, w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(it)
		},
	},
}

// Aliases accepted by ForFormat.
var formatAliases = map[string]string{
	"markdown": "md",
	"htm":      "html",
	"word":     "docx",
}

// ForFormat looks up an export format by name, case-insensitively. An
// empty name selects markdown.
func ForFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if key == "" {
		key = "md"
	}
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	f, ok := formats[key]
	if !ok {
		return Format{}, fmt.Errorf("unsupported export format %q (want md, html, docx or json)", name)
	}
	return f, nil
}

// Filename derives a download name from the itinerary title.
func Filename(it *itinerary.Itinerary, f Format) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(it.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "itinerary"
	}
	return name + f.Extension
}
