package rank

import (
	"sort"
	"time"
)

// Metadata describes one ranking run.
type Metadata struct {
	Persona   string   `json:"persona"`
	Task      string   `json:"task"`
	Timestamp string   `json:"timestamp"`
	Documents []string `json:"documents"`
}

// ExtractedSection is one ranked output row.
type ExtractedSection struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	Page           int     `json:"page"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SubsectionAnalysis carries the refined snippet for a selected section.
type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	Page        int    `json:"page"`
}

// CollectionResult is the full ranking output record, serialized once
// per run and never mutated afterwards.
type CollectionResult struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// BuildResult sorts the scored sections, applies the top-K cut and
// packages the output record. topK <= 0 keeps every section. Ties in
// score keep collection document order, then ascending page, which is
// exactly the incoming order, so a stable sort on score alone suffices.
func BuildResult(scored []ScoredSection, persona, task string, documents []string, topK int, now time.Time) *CollectionResult {
	ranked := make([]ScoredSection, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}

	result := &CollectionResult{
		Metadata: Metadata{
			Persona:   persona,
			Task:      task,
			Timestamp: now.UTC().Format(time.RFC3339),
			Documents: documents,
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(ranked)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(ranked)),
	}
	if result.Metadata.Documents == nil {
		result.Metadata.Documents = []string{}
	}

	for _, s := range ranked {
		result.ExtractedSections = append(result.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			SectionTitle:   s.Heading,
			Page:           s.Page,
			RelevanceScore: s.Score,
		})
		result.SubsectionAnalysis = append(result.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: Refine(s.Context, maxSnippetSentences),
			Page:        s.Page,
		})
	}

	return result
}
