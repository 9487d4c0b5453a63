package block

import "strings"

// TextBlock is one positioned run of text, ordered by reading position
// (top-to-bottom, then left-to-right) within its page.
type TextBlock struct {
	Text     string
	Page     int // 1-indexed physical page number
	FontSize float64
	X, Y     float64 // top-left corner, points
	Width    float64
	Height   float64
	Bold     bool

	// StyleLevel carries a declared heading level (1-3) for formats
	// that mark headings structurally: DOCX styles, HTML h-tags,
	// Markdown ATX headings. 0 means no declared level; PDF blocks
	// always report 0 and rely on font-size ranking instead.
	StyleLevel int
}

// Page is the ordered block sequence of one page.
type Page struct {
	Number int
	Blocks []TextBlock
}

// Document is a fully extracted input file.
type Document struct {
	Name  string // source filename, e.g. "South of France - Cities.pdf"
	Pages []Page
}

// Blocks returns every block of the document in reading order.
func (d *Document) Blocks() []TextBlock {
	var out []TextBlock
	for _, p := range d.Pages {
		out = append(out, p.Blocks...)
	}
	return out
}

// PlainText concatenates all block text across pages, space-joined.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		for _, b := range p.Blocks {
			if b.Text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

// NormalizeSpace collapses runs of whitespace to single spaces and
// trims the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
