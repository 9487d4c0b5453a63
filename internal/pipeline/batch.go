package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docsift/internal/block"
)

// CollectionSpec declares a ranking run over a mounted input directory.
type CollectionSpec struct {
	Persona   string   `json:"persona"`
	Task      string   `json:"task"`
	Documents []string `json:"documents,omitempty"`
}

// DefaultSpecName is the collection spec filename looked up in the
// input directory when none is given.
const DefaultSpecName = "collection.json"

// LoadCollectionSpec reads and validates a collection spec file.
func LoadCollectionSpec(path string) (*CollectionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read collection spec: %w", err)
	}
	var spec CollectionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse collection spec: %w", err)
	}
	if spec.Persona == "" {
		return nil, fmt.Errorf("collection spec: persona is required")
	}
	if spec.Task == "" {
		return nil, fmt.Errorf("collection spec: task is required")
	}
	return &spec, nil
}

// RunOutlineDir extracts an outline for every supported file in inDir
// and writes one <stem>.json per input into outDir. Unreadable
// documents are logged and skipped; the run continues.
func (p *Processor) RunOutlineDir(ctx context.Context, inDir, outDir string) error {
	names, err := listSupported(inDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	written := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(filepath.Join(inDir, name))
		if err != nil {
			p.log.Error("document skipped", "document", name, "error", err)
			continue
		}
		doc, err := p.OutlineFile(NamedFile{Name: name, Data: data})
		if err != nil {
			p.log.Error("document skipped", "document", name, "error", err)
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(outDir, stem+".json")
		if err := writeJSONAtomic(outPath, doc); err != nil {
			return fmt.Errorf("write outline for %s: %w", name, err)
		}
		p.log.Info("outline written", "document", name, "entries", len(doc.Outline))
		written++
	}

	p.log.Info("outline run complete", "inputs", len(names), "written", written)
	return nil
}

// RunRankDir ranks the declared collection in inDir and writes
// collection_result.json into outDir. specPath may be empty, in which
// case inDir/collection.json is used; a spec without a documents list
// covers every supported file in inDir.
func (p *Processor) RunRankDir(ctx context.Context, inDir, outDir, specPath string) error {
	if specPath == "" {
		specPath = filepath.Join(inDir, DefaultSpecName)
	}
	spec, err := LoadCollectionSpec(specPath)
	if err != nil {
		return err
	}

	names := spec.Documents
	if len(names) == 0 {
		if names, err = listSupported(inDir); err != nil {
			return err
		}
	}

	var files []NamedFile
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(inDir, name))
		if err != nil {
			p.log.Error("document skipped", "document", name, "error", err)
			continue
		}
		files = append(files, NamedFile{Name: name, Data: data})
	}

	result, err := p.RankCollection(ctx, files, spec.Persona, spec.Task, nil)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(outDir, "collection_result.json")
	if err := writeJSONAtomic(outPath, result); err != nil {
		return fmt.Errorf("write collection result: %w", err)
	}

	p.log.Info("rank run complete",
		"documents", len(result.Metadata.Documents),
		"sections", len(result.ExtractedSections),
		"output", outPath,
	)
	return nil
}

// listSupported returns the supported filenames in dir, sorted for a
// stable collection document order. The collection spec itself is not
// an input document.
func listSupported(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == DefaultSpecName {
			continue
		}
		if block.IsSupportedExtension(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// writeJSONAtomic marshals v and renames a temp file into place, so a
// failed run never leaves a partial output behind.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".docsift-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
