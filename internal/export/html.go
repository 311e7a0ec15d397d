package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; }
h2 { border-bottom: 1px solid #ddd; }
</style>
</head>
<body>
`

// HTML renders it as a standalone page.
func HTML(it *itinerary.Itinerary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, pageHead, html.EscapeString(it.Title))
	if err := md.Convert([]byte(Markdown(it)), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
