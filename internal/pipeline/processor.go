// Package pipeline runs documents through extraction, classification
// and ranking, both for directory batches and queued API jobs.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docsift/internal/block"
	"github.com/dgallion1/docsift/internal/classify"
	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/embed"
	"github.com/dgallion1/docsift/internal/outline"
	"github.com/dgallion1/docsift/internal/rank"
	"github.com/dgallion1/docsift/internal/sections"
)

// NamedFile is one in-memory input document.
type NamedFile struct {
	Name string
	Data []byte
}

// ProgressFunc receives phase updates while a collection is processed.
type ProgressFunc func(phase string, done, total int)

// Processor holds the tuned pipeline parameters and collaborators.
type Processor struct {
	log      *slog.Logger
	embedder embed.Embedder
	secCfg   sections.Config
	boost    rank.BoostConfig
	topK     int
	workers  int
}

// NewProcessor builds a Processor from configuration. embedder may be
// nil for outline-only use; ranking then fails fast.
func NewProcessor(cfg config.Config, embedder embed.Embedder, log *slog.Logger) *Processor {
	boost := rank.DefaultBoostConfig()
	if len(cfg.BoostKeywords) > 0 {
		boost.Keywords = cfg.BoostKeywords
	}
	boost.Increment = cfg.BoostIncrement
	boost.Cap = cfg.BoostCap

	// The fan-out semaphore needs at least one slot.
	workers := cfg.WorkerCount
	if workers <= 0 {
		workers = 1
	}

	return &Processor{
		log:      log,
		embedder: embedder,
		secCfg: sections.Config{
			WindowBlocks:  cfg.ContextWindow,
			FallbackChars: cfg.FallbackChars,
		},
		boost:   boost,
		topK:    cfg.TopK,
		workers: workers,
	}
}

// classifyFile parses one document and classifies its blocks.
func (p *Processor) classifyFile(f NamedFile) (*block.Document, *classify.Classified, error) {
	ext, err := block.ForFile(f.Name)
	if err != nil {
		return nil, nil, err
	}
	doc, err := ext.Extract(bytes.NewReader(f.Data), f.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return doc, classify.Classify(doc), nil
}

// OutlineFile produces the outline record for a single document.
func (p *Processor) OutlineFile(f NamedFile) (*outline.Document, error) {
	_, classified, err := p.classifyFile(f)
	if err != nil {
		return nil, err
	}
	return outline.Build(classified), nil
}

// SectionsForFile produces the ranked-pipeline sections for a single
// document, including the fallback section when no headings exist.
func (p *Processor) SectionsForFile(f NamedFile) ([]sections.Section, error) {
	doc, classified, err := p.classifyFile(f)
	if err != nil {
		return nil, err
	}
	return sections.Extract(classified, doc, p.secCfg), nil
}

// RankCollection runs the full ranking pipeline over a collection.
// Documents that fail to parse are logged and skipped; an embedding
// failure aborts the run. An empty collection yields a result record
// with empty section lists.
func (p *Processor) RankCollection(ctx context.Context, files []NamedFile, persona, task string, onProgress ProgressFunc) (*rank.CollectionResult, error) {
	if onProgress == nil {
		onProgress = func(string, int, int) {}
	}

	// Per-document work is independent; results land in preallocated
	// slots so no ordering dependency or lock is needed before the
	// final aggregation.
	perDoc := make([][]sections.Section, len(files))
	errs := make([]error, len(files))

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	var done int
	var doneMu sync.Mutex

	for i, f := range files {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, f NamedFile) {
			defer func() { <-sem; wg.Done() }()
			perDoc[i], errs[i] = p.SectionsForFile(f)
			doneMu.Lock()
			done++
			d := done
			doneMu.Unlock()
			onProgress("extracting", d, len(files))
		}(i, f)
	}
	wg.Wait()

	var all []sections.Section
	var documents []string
	for i, f := range files {
		if errs[i] != nil {
			p.log.Error("document skipped", "document", f.Name, "error", errs[i])
			continue
		}
		documents = append(documents, f.Name)
		all = append(all, perDoc[i]...)
	}

	if len(all) == 0 {
		return rank.BuildResult(nil, persona, task, documents, p.topK, time.Now()), nil
	}

	if p.embedder == nil {
		return nil, fmt.Errorf("no embedding collaborator configured")
	}

	onProgress("scoring", 0, len(all))
	scorer := rank.NewScorer(p.embedder, p.boost)

	var scored []rank.ScoredSection
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		scored, lastErr = scorer.ScoreAll(ctx, all, persona, task)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		p.log.Warn("retryable scoring error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("score collection: %w", lastErr)
	}
	onProgress("scoring", len(all), len(all))

	return rank.BuildResult(scored, persona, task, documents, p.topK, time.Now()), nil
}
