package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXLoader handles .docx proposals. "Heading N" paragraph styles become
// N-hash headings, "Title" becomes the top heading and list paragraphs
// become bullets.
type DOCXLoader struct{}

func (l *DOCXLoader) Load(r io.Reader) (string, error) {
	// go-docx needs a ReaderAt+size, so write to temp file.
	tmp, err := os.CreateTemp("", "tripgest-docx-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var blocks []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		switch level, list := docxStyle(para); {
		case level > 0:
			blocks = append(blocks, heading(level, text))
		case list && !strings.HasPrefix(text, "- "):
			blocks = append(blocks, "- "+text)
		default:
			blocks = append(blocks, text)
		}
	}
	return joinBlocks(blocks), nil
}

// docxStyle maps a paragraph style to a heading level and a list flag.
func docxStyle(para *docx.Paragraph) (level int, list bool) {
	if para.Properties == nil {
		return 0, false
	}
	if para.Properties.NumProperties != nil {
		list = true
	}
	if para.Properties.Style == nil {
		return 0, list
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1, false
	}
	if strings.HasPrefix(style, "listparagraph") || strings.HasPrefix(style, "listbullet") {
		return 0, true
	}
	if n, ok := strings.CutPrefix(style, "heading"); ok && len(n) == 1 && n[0] >= '1' && n[0] <= '6' {
		return int(n[0] - '0'), false
	}
	return 0, list
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
