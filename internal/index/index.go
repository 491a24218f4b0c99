// Package index builds the whole-project symbol index and resolves
// name-based dependencies against it.
package index

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"docforge/internal/crawler"
	"docforge/internal/pysrc"
)

// ErrNotFound is returned when a name has no entry in the index. It is
// distinct from a symbol that exists but depends on nothing, which yields an
// empty result.
var ErrNotFound = errors.New("symbol not found in index")

// MaxDependencyLen is the hard per-entry cutoff applied to dependency source
// texts before they are handed to a generation backend.
const MaxDependencyLen = 3000

// commonNames are pruned after the build: constructor and context-manager
// hooks plus primitive type names produce too many false-positive dependency
// matches to be useful as index keys.
var commonNames = []string{
	"__init__", "__enter__", "__exit__",
	"str", "dict", "list", "int", "float",
}

// Symbol is one indexed definition. Identity is structural: two symbols are
// the same entry iff file path, name and normalized source all match, so
// re-indexing an unchanged file never duplicates entries.
type Symbol struct {
	Name             string     `json:"name"`
	Kind             pysrc.Kind `json:"kind"`
	FilePath         string     `json:"file_path"`
	NormalizedSource string     `json:"normalized_source"`
	HasDoc           bool       `json:"has_doc"`
}

// Location re-scans the symbol's file under rootDir for its defining line.
// It is computed lazily and never stored, since line numbers drift as files
// are edited between index build and lookup.
func (s Symbol) Location(rootDir string) (int, bool) {
	return pysrc.FindLocation(filepath.Join(rootDir, s.FilePath), s.Name, s.Kind)
}

type symbolKey struct {
	filePath, name, source string
}

func (s Symbol) key() symbolKey {
	return symbolKey{filePath: s.FilePath, name: s.Name, source: s.NormalizedSource}
}

// Index maps symbol names to the set of distinct definitions sharing that
// name. It is built once, sequentially, and is immutable afterwards, which
// makes concurrent lookups safe without synchronization.
type Index struct {
	entries map[string][]Symbol
	files   []string
}

// Build walks rootDir with the given extra ignore markers and constructs the
// full index. Construction completes before the index is returned; no reader
// can observe a half-built index.
func Build(rootDir string, ignoredFolders []string) (*Index, error) {
	idx := &Index{entries: make(map[string][]Symbol)}
	seen := make(map[symbolKey]struct{})

	c := crawler.New(ignoredFolders)
	err := c.Scan(rootDir, func(relPath string, defs []pysrc.Definition) {
		idx.files = append(idx.files, relPath)
		for _, def := range defs {
			normalized, hasDoc := def.Normalize()
			if normalized == "" {
				continue
			}
			sym := Symbol{
				Name:             def.Name,
				Kind:             def.Kind,
				FilePath:         relPath,
				NormalizedSource: normalized,
				HasDoc:           hasDoc,
			}
			if _, dup := seen[sym.key()]; dup {
				continue
			}
			seen[sym.key()] = struct{}{}
			idx.entries[sym.Name] = append(idx.entries[sym.Name], sym)
		}
	})
	if err != nil {
		return nil, err
	}

	for _, name := range commonNames {
		delete(idx.entries, name)
	}

	// Entries under one name are kept sorted so that the representative
	// picked during dependency resolution is deterministic.
	for name := range idx.entries {
		sortSymbols(idx.entries[name])
	}

	log.Debug().Int("names", len(idx.entries)).Str("root", rootDir).Msg("index built")
	return idx, nil
}

func sortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].FilePath != syms[j].FilePath {
			return syms[i].FilePath < syms[j].FilePath
		}
		return syms[i].NormalizedSource < syms[j].NormalizedSource
	})
}

// Lookup returns all entries stored under name, ordered by file path then
// source. ok is false when the name is not indexed.
func (i *Index) Lookup(name string) ([]Symbol, bool) {
	syms, ok := i.entries[name]
	if !ok {
		return nil, false
	}
	out := make([]Symbol, len(syms))
	copy(out, syms)
	return out, true
}

// Files returns every scanned file path (relative to the build root),
// sorted. Used for module-level lookups.
func (i *Index) Files() []string {
	out := make([]string, len(i.files))
	copy(out, i.files)
	sort.Strings(out)
	return out
}

// Names returns every indexed name, sorted.
func (i *Index) Names() []string {
	names := make([]string, 0, len(i.entries))
	for name := range i.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All iterates every entry in name order.
func (i *Index) All(fn func(sym Symbol)) {
	for _, name := range i.Names() {
		for _, sym := range i.entries[name] {
			fn(sym)
		}
	}
}

// Len returns the number of distinct indexed names.
func (i *Index) Len() int {
	return len(i.entries)
}

// Duplicates lists the names mapped to more than one definition, sorted.
// Duplicates are informational, not an error: the same name can legitimately
// appear in multiple files, and the operator only needs to know generated
// context may pick the wrong variant.
func (i *Index) Duplicates() []string {
	var dups []string
	for name, syms := range i.entries {
		if len(syms) > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}
