// Package outline assembles classified headings into the per-document
// outline record.
package outline

import "github.com/dgallion1/docsift/internal/classify"

// Entry is one outline row.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Document is the outline output for one input file.
type Document struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Build emits the outline for one classified document. Entries keep
// the original page/reading order: a later H1 may follow an earlier
// H2 (chapter starts), and repeated identical headings stay distinct.
func Build(c *classify.Classified) *Document {
	doc := &Document{Outline: []Entry{}}

	for _, h := range c.Headings() {
		switch h.Level {
		case classify.LevelTitle:
			if doc.Title == "" {
				doc.Title = h.Text
			}
		case classify.LevelH1, classify.LevelH2, classify.LevelH3:
			doc.Outline = append(doc.Outline, Entry{
				Level: string(h.Level),
				Text:  h.Text,
				Page:  h.Page,
			})
		}
	}

	// No TITLE block: fall back to the first H1.
	if doc.Title == "" {
		for _, e := range doc.Outline {
			if e.Level == string(classify.LevelH1) {
				doc.Title = e.Text
				break
			}
		}
	}

	return doc
}
