package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLLoader converts an HTML proposal into markdown: h1-h6 become ATX
// headings, list items become "- " bullets (or "N. " inside <ol>), and
// paragraphs become text blocks.
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var blocks []string
	var walk func(n *html.Node, ordered bool, index *int)
	walk = func(n *html.Node, ordered bool, index *int) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					blocks = append(blocks, heading(level, t))
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "head":
				return
			case "ol", "ul":
				i := 0
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, n.Data == "ol", &i)
				}
				return
			case "li":
				t := textContent(n)
				if t == "" {
					return
				}
				if ordered && index != nil {
					*index++
					blocks = append(blocks, fmt.Sprintf("%d. %s", *index, t))
				} else {
					blocks = append(blocks, "- "+t)
				}
				return
			case "p", "blockquote", "td":
				if t := textContent(n); t != "" {
					blocks = append(blocks, t)
				}
				return
			case "br":
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, ordered, index)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body, false, nil)
	} else {
		walk(doc, false, nil)
	}

	return joinBlocks(blocks), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// textContent collapses the text of n into one line.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
