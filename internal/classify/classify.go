// Package classify decides which text blocks are headings.
//
// Classification is two-pass: the document's distinct font sizes are
// collected first, then every block is run through an ordered rule
// table. Level assignment depends on the whole document's size
// distribution, so a streaming single pass cannot work here.
package classify

import (
	"sort"

	"github.com/dgallion1/docsift/internal/block"
)

// Level is the structural role assigned to a text block.
type Level string

const (
	LevelTitle Level = "TITLE"
	LevelH1    Level = "H1"
	LevelH2    Level = "H2"
	LevelH3    Level = "H3"
	LevelNone  Level = "NONE"
)

// HeadingCandidate is a block that classified as a title or heading.
type HeadingCandidate struct {
	Index int // position in the document's flattened reading order
	Text  string
	Page  int
	Level Level
}

// Classified holds the per-block levels for one document, parallel to
// Blocks in reading order.
type Classified struct {
	Blocks []block.TextBlock
	Levels []Level
}

// Classify assigns a level to every block of the document.
//
// Rule order per block, first match wins:
//  1. rejection filters (word count, alpha ratio, casing)
//  2. declared style level (DOCX styles, HTML h-tags, Markdown ATX)
//  3. font-size rank: largest distinct size, first in reading order,
//     is the TITLE; the next three distinct sizes map to H1/H2/H3;
//     anything smaller is body text.
func Classify(doc *block.Document) *Classified {
	blocks := doc.Blocks()
	c := &Classified{
		Blocks: blocks,
		Levels: make([]Level, len(blocks)),
	}

	tiers := fontTiers(blocks)
	titleAssigned := false

	for i, b := range blocks {
		if rejected(b) {
			c.Levels[i] = LevelNone
			continue
		}

		if b.StyleLevel >= 1 && b.StyleLevel <= 3 {
			c.Levels[i] = [...]Level{LevelH1, LevelH2, LevelH3}[b.StyleLevel-1]
			continue
		}

		if b.FontSize <= 0 {
			c.Levels[i] = LevelNone
			continue
		}

		switch rank := tiers[b.FontSize]; rank {
		case 0:
			// Largest size: first occurrence wins the title slot,
			// later blocks of that size are not headings.
			if !titleAssigned {
				c.Levels[i] = LevelTitle
				titleAssigned = true
			} else {
				c.Levels[i] = LevelNone
			}
		case 1:
			c.Levels[i] = LevelH1
		case 2:
			c.Levels[i] = LevelH2
		case 3:
			c.Levels[i] = LevelH3
		default:
			c.Levels[i] = LevelNone
		}
	}

	return c
}

// Headings returns all candidates with a level other than NONE, in
// reading order.
func (c *Classified) Headings() []HeadingCandidate {
	var out []HeadingCandidate
	for i, lvl := range c.Levels {
		if lvl == LevelNone {
			continue
		}
		out = append(out, HeadingCandidate{
			Index: i,
			Text:  c.Blocks[i].Text,
			Page:  c.Blocks[i].Page,
			Level: lvl,
		})
	}
	return out
}

// fontTiers maps each distinct rounded font size to its descending
// rank: 0 for the largest, 1..3 for the heading tiers, -1 below H3.
func fontTiers(blocks []block.TextBlock) map[float64]int {
	seen := map[float64]bool{}
	var sizes []float64
	for _, b := range blocks {
		if b.FontSize > 0 && !seen[b.FontSize] {
			seen[b.FontSize] = true
			sizes = append(sizes, b.FontSize)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	tiers := make(map[float64]int, len(sizes))
	for i, s := range sizes {
		if i <= 3 {
			tiers[s] = i
		} else {
			tiers[s] = -1
		}
	}
	return tiers
}
