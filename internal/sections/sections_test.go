package sections

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/docsift/internal/block"
	"github.com/dgallion1/docsift/internal/classify"
)

// fixture assembles a document and a matching classification from
// parallel slices, all blocks in reading order.
func fixture(name string, texts []string, pages []int, levels []classify.Level) (*classify.Classified, *block.Document) {
	doc := &block.Document{Name: name}
	byPage := map[int]int{}
	var blocks []block.TextBlock
	for i := range texts {
		b := block.TextBlock{Text: texts[i], Page: pages[i]}
		blocks = append(blocks, b)
		if idx, ok := byPage[pages[i]]; ok {
			doc.Pages[idx].Blocks = append(doc.Pages[idx].Blocks, b)
		} else {
			byPage[pages[i]] = len(doc.Pages)
			doc.Pages = append(doc.Pages, block.Page{Number: pages[i], Blocks: []block.TextBlock{b}})
		}
	}
	return &classify.Classified{Blocks: blocks, Levels: levels}, doc
}

func TestExtract_ContextWindowCap(t *testing.T) {
	texts := []string{"Packing Tips and Tricks"}
	levels := []classify.Level{classify.LevelH1}
	pages := []int{1}
	for i := 0; i < 20; i++ {
		texts = append(texts, fmt.Sprintf("body%d", i))
		levels = append(levels, classify.LevelNone)
		pages = append(pages, 1)
	}

	c, doc := fixture("guide.pdf", texts, pages, levels)
	secs := Extract(c, doc, DefaultConfig())

	if len(secs) != 1 {
		t.Fatalf("expected 1 section, got %d", len(secs))
	}
	s := secs[0]
	if s.Heading != "Packing Tips and Tricks" || s.Page != 1 {
		t.Errorf("unexpected section header: %+v", s)
	}

	words := strings.Fields(s.Context)
	if len(words) != 15 {
		t.Fatalf("expected 15 context blocks, got %d: %q", len(words), s.Context)
	}
	if words[0] != "body0" || words[14] != "body14" {
		t.Errorf("expected first 15 body blocks in order, got %q", s.Context)
	}
}

func TestExtract_ContextStopsAtPageBoundary(t *testing.T) {
	c, doc := fixture("guide.pdf",
		[]string{"Coastal Adventures", "beaches here", "cliff walks too", "next page text"},
		[]int{2, 2, 2, 3},
		[]classify.Level{classify.LevelH1, classify.LevelNone, classify.LevelNone, classify.LevelNone},
	)

	secs := Extract(c, doc, DefaultConfig())
	if len(secs) != 1 {
		t.Fatalf("expected 1 section, got %d", len(secs))
	}
	if secs[0].Context != "beaches here cliff walks too" {
		t.Errorf("context must stop at the page boundary, got %q", secs[0].Context)
	}
}

func TestExtract_SkipsNeighboringHeadings(t *testing.T) {
	c, doc := fixture("guide.pdf",
		[]string{"Nightlife and Entertainment", "bars stay open late", "Day Trips", "take the coastal train"},
		[]int{1, 1, 1, 1},
		[]classify.Level{classify.LevelH1, classify.LevelNone, classify.LevelH2, classify.LevelNone},
	)

	secs := Extract(c, doc, DefaultConfig())
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	// The intervening heading itself never joins a neighbor's context.
	if strings.Contains(secs[0].Context, "Day Trips") {
		t.Errorf("neighboring heading leaked into context: %q", secs[0].Context)
	}
	if secs[1].Heading != "Day Trips" || secs[1].Context != "take the coastal train" {
		t.Errorf("unexpected second section: %+v", secs[1])
	}
}

func TestExtract_FallbackSectionWhenNoHeadings(t *testing.T) {
	c, doc := fixture("notes.txt",
		[]string{"plain paragraph one", "plain paragraph two"},
		[]int{1, 1},
		[]classify.Level{classify.LevelNone, classify.LevelNone},
	)

	secs := Extract(c, doc, DefaultConfig())
	if len(secs) != 1 {
		t.Fatalf("expected 1 fallback section, got %d", len(secs))
	}
	s := secs[0]
	if s.Heading != "" || s.Page != 1 || s.Document != "notes.txt" {
		t.Errorf("unexpected fallback section: %+v", s)
	}
	if s.Context != "plain paragraph one plain paragraph two" {
		t.Errorf("unexpected fallback context: %q", s.Context)
	}
}

func TestExtract_FallbackTruncatesToCharLimit(t *testing.T) {
	long := strings.Repeat("x", 50)
	c, doc := fixture("notes.txt",
		[]string{long},
		[]int{1},
		[]classify.Level{classify.LevelNone},
	)

	secs := Extract(c, doc, Config{WindowBlocks: 15, FallbackChars: 20})
	if len(secs) != 1 {
		t.Fatalf("expected 1 section, got %d", len(secs))
	}
	if got := len([]rune(secs[0].Context)); got != 20 {
		t.Errorf("expected 20-rune fallback context, got %d", got)
	}
}

func TestExtract_EmptyDocumentYieldsNothing(t *testing.T) {
	doc := &block.Document{Name: "empty.txt"}
	c := &classify.Classified{}
	if secs := Extract(c, doc, DefaultConfig()); len(secs) != 0 {
		t.Errorf("expected no sections for empty document, got %d", len(secs))
	}
}

func TestSection_Text(t *testing.T) {
	s := Section{Heading: "Local Cuisine", Context: "try the bouillabaisse"}
	if got := s.Text(); got != "Local Cuisine try the bouillabaisse" {
		t.Errorf("unexpected text: %q", got)
	}
	fallback := Section{Context: "document prefix only"}
	if got := fallback.Text(); got != "document prefix only" {
		t.Errorf("unexpected fallback text: %q", got)
	}
}
