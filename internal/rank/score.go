// Package rank scores sections against a persona+task query and
// assembles the ranked collection report.
package rank

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dgallion1/docsift/internal/embed"
	"github.com/dgallion1/docsift/internal/sections"
)

// BoostConfig is the additive keyword boost schedule. It is passed in
// explicitly so scoring stays deterministic and testable; there is no
// process-wide keyword state.
type BoostConfig struct {
	Keywords  []string
	Increment float64 // added per matched keyword
	Cap       float64 // total boost ceiling
}

// DefaultBoostConfig returns the deployed travel-domain schedule.
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		Keywords: []string{
			"packing", "cuisine", "food", "activities", "things to do",
			"entertainment", "nightlife", "tips", "tricks", "guide",
			"plan", "water sports", "coastal", "restaurants", "cities",
			"checklist", "hotel", "transport", "local",
		},
		Increment: 0.05,
		Cap:       0.2,
	}
}

// Boost sums the increments of keywords present in text
// (case-insensitive substring match), capped at Cap.
func (cfg BoostConfig) Boost(text string) float64 {
	if cfg.Increment <= 0 || len(cfg.Keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	total := 0.0
	for _, kw := range cfg.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			total += cfg.Increment
		}
	}
	if cfg.Cap > 0 && total > cfg.Cap {
		total = cfg.Cap
	}
	return total
}

// Cosine computes dot(a,b)/(|a|*|b|), defined as 0 when either vector
// has zero norm.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ScoredSection is a Section with its relevance score. Immutable once
// scored.
type ScoredSection struct {
	sections.Section
	Score float64
}

// Scorer embeds sections and queries and produces relevance scores.
type Scorer struct {
	embedder embed.Embedder
	boost    BoostConfig
}

func NewScorer(e embed.Embedder, boost BoostConfig) *Scorer {
	return &Scorer{embedder: e, boost: boost}
}

// ScoreAll scores every section against the persona+task query. All
// section texts plus the query go out in a single batched embedding
// call. An embedding failure aborts scoring: without vectors no
// comparable scores exist.
func (s *Scorer) ScoreAll(ctx context.Context, secs []sections.Section, persona, task string) ([]ScoredSection, error) {
	if len(secs) == 0 {
		return nil, nil
	}

	query := persona + " " + task
	texts := make([]string, 0, len(secs)+1)
	for _, sec := range secs {
		texts = append(texts, sec.Text())
	}
	texts = append(texts, query)

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d sections: %w", len(secs), err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}
	queryVec := vectors[len(vectors)-1]

	scored := make([]ScoredSection, len(secs))
	for i, sec := range secs {
		scored[i] = ScoredSection{
			Section: sec,
			Score:   Cosine(vectors[i], queryVec) + s.boost.Boost(sec.Text()),
		}
	}
	return scored, nil
}
