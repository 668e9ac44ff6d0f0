// Package extract implements the heuristic extraction engine: it walks a
// module tree, applies the pattern catalog to source files and the manifest
// parsers to dependency files, and returns deduplicated result sets.
package extract

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/archdrift/archdrift/internal/catalog"
	"github.com/archdrift/archdrift/internal/config"
	"github.com/archdrift/archdrift/internal/fileproc"
	"github.com/archdrift/archdrift/internal/snapshot"
)

// Extractor scans one module path for endpoints, calls and dependencies.
// Extraction never fails past this boundary: any per-file or per-manifest
// error contributes nothing and the walk continues.
type Extractor struct {
	cfg *config.Config
}

// New creates an extractor using the given configuration.
func New(cfg *config.Config) *Extractor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Extractor{cfg: cfg}
}

// Extract scans modulePath and returns deduplicated extraction sets.
func (e *Extractor) Extract(modulePath string) *snapshot.Sets {
	return e.ExtractWithProgress(modulePath, nil)
}

// ExtractWithProgress scans modulePath, invoking onProgress once per file.
// Files are scanned concurrently; there is no cross-file mutable state.
func (e *Extractor) ExtractWithProgress(modulePath string, onProgress fileproc.ProgressFunc) *snapshot.Sets {
	files := e.collectFiles(modulePath)

	partials := fileproc.ForEachFileWithProgress(files, func(path string) (*snapshot.Sets, error) {
		return e.extractFile(path), nil
	}, onProgress)

	out := snapshot.NewSets()
	for _, p := range partials {
		out.Merge(p)
	}
	return out
}

// collectFiles enumerates candidate files under root: source files on the
// extension allowlists plus known manifest files. Paths containing an
// excluded directory token are skipped, subtrees included.
func (e *Extractor) collectFiles(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if e.cfg.ShouldExclude(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsManifest(filepath.Base(path)) ||
			e.cfg.HasEndpointExtension(path) ||
			e.cfg.HasCallExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// extractFile scans a single file. Errors degrade to an empty contribution.
func (e *Extractor) extractFile(path string) *snapshot.Sets {
	sets := snapshot.NewSets()

	if parse, ok := manifestParsers[filepath.Base(path)]; ok {
		deps, err := parse(path, e.cfg)
		if err != nil {
			return sets
		}
		for _, d := range deps {
			sets.AddDependency(d)
		}
		return sets
	}

	data, err := os.ReadFile(path)
	if err != nil || !isText(data) {
		return sets
	}
	content := string(data)

	if e.cfg.HasEndpointExtension(path) {
		for _, rule := range catalog.EndpointRules {
			for _, raw := range rule.Matches(content) {
				sets.AddEndpoint(snapshot.NewEndpoint(rule.Method, raw))
			}
		}
	}

	if e.cfg.HasCallExtension(path) {
		for _, rule := range catalog.CallRules {
			for _, m := range rule.Matches(content) {
				sets.AddCall(m)
			}
		}
	}

	return sets
}

// isText reports whether data looks like decodable text. A NUL byte marks the
// file as binary and it is skipped rather than failing the walk.
func isText(data []byte) bool {
	return !bytes.ContainsRune(data, 0)
}
