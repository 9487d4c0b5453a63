package block

import (
	"bufio"
	"io"
	"strings"
)

// TextExtractor handles plain text files. Plain text carries no font or
// style structure, so every paragraph becomes a body block; documents
// flow through the no-headings fallback path downstream.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []TextBlock
	var current strings.Builder

	flush := func() {
		t := NormalizeSpace(current.String())
		if t != "" {
			blocks = append(blocks, TextBlock{Text: t, Page: 1})
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	out := &Document{Name: filename}
	out.Pages = []Page{{Number: 1, Blocks: blocks}}
	return out, nil
}
