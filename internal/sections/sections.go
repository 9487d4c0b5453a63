// Package sections joins detected headings with their surrounding body
// text, producing the units that relevance ranking operates on.
package sections

import (
	"strings"

	"github.com/dgallion1/docsift/internal/block"
	"github.com/dgallion1/docsift/internal/classify"
)

// Section is one heading plus its context window from a single document.
type Section struct {
	Document string // source filename within the collection
	Heading  string
	Page     int
	Context  string
}

// Text is the string a Section is embedded and keyword-matched on.
func (s Section) Text() string {
	if s.Heading == "" {
		return s.Context
	}
	return s.Heading + " " + s.Context
}

// Config bounds context extraction.
type Config struct {
	WindowBlocks  int // body blocks gathered after each heading
	FallbackChars int // prefix length when a document has no headings
}

// DefaultConfig matches the deployed extraction parameters.
func DefaultConfig() Config {
	return Config{
		WindowBlocks:  15,
		FallbackChars: 1000,
	}
}

// Extract builds one Section per detected heading. A document with no
// detected headings yields exactly one fallback Section holding the
// leading slice of its full text; a genuinely empty document yields
// nothing.
func Extract(c *classify.Classified, doc *block.Document, cfg Config) []Section {
	if cfg.WindowBlocks <= 0 {
		cfg.WindowBlocks = 15
	}
	if cfg.FallbackChars <= 0 {
		cfg.FallbackChars = 1000
	}

	headings := c.Headings()
	if len(headings) == 0 {
		text := truncateRunes(block.NormalizeSpace(doc.PlainText()), cfg.FallbackChars)
		if text == "" {
			return nil
		}
		return []Section{{
			Document: doc.Name,
			Heading:  "",
			Page:     1,
			Context:  text,
		}}
	}

	out := make([]Section, 0, len(headings))
	for _, h := range headings {
		out = append(out, Section{
			Document: doc.Name,
			Heading:  h.Text,
			Page:     h.Page,
			Context:  contextAfter(c, h, cfg.WindowBlocks),
		})
	}
	return out
}

// contextAfter gathers up to window body blocks following the heading
// on the same page, in reading order. Pages with fewer blocks simply
// contribute what they have.
func contextAfter(c *classify.Classified, h classify.HeadingCandidate, window int) string {
	var parts []string
	for i := h.Index + 1; i < len(c.Blocks) && len(parts) < window; i++ {
		b := c.Blocks[i]
		if b.Page != h.Page {
			break
		}
		if c.Levels[i] != classify.LevelNone {
			continue // neighboring headings own their own context
		}
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return block.NormalizeSpace(strings.Join(parts, " "))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
