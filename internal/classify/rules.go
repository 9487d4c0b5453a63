package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docsift/internal/block"
)

// rejectRule is one predicate in the rejection table. Rules are kept
// as an ordered list of named predicates so each can be tested and
// reordered independently.
type rejectRule struct {
	name   string
	reject func(b block.TextBlock) bool
}

var rejectRules = []rejectRule{
	{"empty", func(b block.TextBlock) bool {
		return strings.TrimSpace(b.Text) == ""
	}},
	{"word-count", func(b block.TextBlock) bool {
		wc := len(strings.Fields(b.Text))
		if wc > maxHeadingWords {
			return true
		}
		if wc >= minHeadingWords {
			return false
		}
		// Short all-caps banners ("INTRODUCTION") and numbered
		// section labels ("1.1 Background") are still headings.
		return !isAllCaps(b.Text) && !hasSectionNumber(b.Text)
	}},
	{"non-alpha", func(b block.TextBlock) bool {
		return !mostlyAlphabetic(b.Text)
	}},
	{"casing", func(b block.TextBlock) bool {
		return !isAllCaps(b.Text) && !isTitleCase(b.Text)
	}},
}

const (
	minHeadingWords = 3
	maxHeadingWords = 20
)

// rejected reports whether any rejection rule fires for the block.
func rejected(b block.TextBlock) bool {
	for _, r := range rejectRules {
		if r.reject(b) {
			return true
		}
	}
	return false
}

var sectionNumberRe = regexp.MustCompile(`^\d+(\.\d+)*\s`)

func hasSectionNumber(s string) bool {
	return sectionNumberRe.MatchString(s)
}

// mostlyAlphabetic reports whether at least half of the non-space
// runes are letters. Page numbers, dates and rules like "1234-5678"
// fail this regardless of font size.
func mostlyAlphabetic(s string) bool {
	var alpha, total int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	return total > 0 && alpha*2 >= total
}

// isAllCaps reports whether the text contains letters and every letter
// is uppercase.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

// Short connectives stay lowercase in conventional title casing.
var titleCaseStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true,
	"by": true, "for": true, "in": true, "of": true, "on": true,
	"or": true, "the": true, "to": true, "with": true,
}

// isTitleCase reports whether every significant word starts with an
// uppercase letter. The first word is always significant.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	checked := 0
	for i, w := range words {
		r := firstLetter(w)
		if r == 0 {
			continue // numbers and punctuation don't carry case
		}
		if i > 0 && titleCaseStopwords[strings.ToLower(w)] {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		checked++
	}
	return checked > 0
}

func firstLetter(w string) rune {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return r
		}
	}
	return 0
}
