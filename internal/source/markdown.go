package source

import (
	"bytes"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// MarkdownLoader passes markdown through, dropping a UTF-8 byte order mark
// and normalizing line endings.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	src = bytes.TrimPrefix(src, utf8BOM)
	s := strings.ReplaceAll(string(src), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n"), nil
}
