package block

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor reads PDFs with per-character font and position data and
// reassembles them into line-level TextBlocks in reading order.
type PDFExtractor struct{}

const (
	// rowTolerance groups characters whose baselines are within this
	// many points into the same line.
	rowTolerance = 2.0

	// marginBand is the top/bottom strip treated as running
	// header/footer and excluded from block extraction.
	marginBand = 50.0
)

func (p *PDFExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docsift-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &Document{Name: filename}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		blocks := extractPageBlocks(page, i)
		doc.Pages = append(doc.Pages, Page{Number: i, Blocks: blocks})
	}

	return doc, nil
}

// extractPageBlocks groups a page's character stream into line blocks.
func extractPageBlocks(page pdflib.Page, pageNum int) []TextBlock {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	height := pageHeight(page)

	// Drop empties and header/footer bands before grouping.
	texts := make([]pdflib.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		if height > 2*marginBand && (t.Y > height-marginBand || t.Y < marginBand) {
			continue
		}
		texts = append(texts, t)
	}
	if len(texts) == 0 {
		return nil
	}

	// Reading order: PDF Y grows upward, so larger Y comes first.
	sort.SliceStable(texts, func(i, j int) bool {
		if math.Abs(texts[i].Y-texts[j].Y) > rowTolerance {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	var blocks []TextBlock
	var line strings.Builder
	var lineStart, prevEnd, lineY, lineSize float64
	var lineBold bool

	flush := func() {
		text := NormalizeSpace(line.String())
		if text != "" {
			blocks = append(blocks, TextBlock{
				Text:     text,
				Page:     pageNum,
				FontSize: math.Round(lineSize),
				X:        lineStart,
				Y:        lineY,
				Width:    prevEnd - lineStart,
				Bold:     lineBold,
			})
		}
		line.Reset()
		lineBold = false
		lineSize = 0
	}

	for i, t := range texts {
		sameLine := i > 0 && math.Abs(t.Y-lineY) <= rowTolerance
		if !sameLine {
			flush()
			lineStart = t.X
			lineY = t.Y
		} else if gap := t.X - prevEnd; gap > wordGap(t.FontSize) {
			line.WriteString(" ")
		}
		line.WriteString(t.S)
		prevEnd = t.X + t.W
		if t.FontSize > lineSize {
			lineSize = t.FontSize
		}
		if strings.Contains(strings.ToLower(t.Font), "bold") {
			lineBold = true
		}
	}
	flush()

	return blocks
}

// wordGap is the horizontal distance taken as a word boundary.
func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return 0.3 * fontSize
}

func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return 0
	}
	return box.Index(3).Float64() - box.Index(1).Float64()
}
