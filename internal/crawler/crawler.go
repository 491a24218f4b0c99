// Package crawler scans a directory tree for Python source files and streams
// the definitions found in each one.
package crawler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	ignore "github.com/sabhiram/go-gitignore"

	"docforge/internal/pysrc"
)

// DefaultIgnoredFolders are always skipped; caller-supplied markers are
// appended to this set, never replacing it.
var DefaultIgnoredFolders = []string{".venv", ".mypy_cache"}

// Crawler walks a root directory and parses every eligible .py file.
type Crawler struct {
	ignored   []string
	gitignore *ignore.GitIgnore
}

// New creates a crawler. extraIgnored folder markers are added on top of the
// defaults; a directory is skipped entirely when its path contains any
// marker.
func New(extraIgnored []string) *Crawler {
	ignored := make([]string, 0, len(DefaultIgnoredFolders)+len(extraIgnored))
	ignored = append(ignored, DefaultIgnoredFolders...)
	ignored = append(ignored, extraIgnored...)
	return &Crawler{ignored: ignored}
}

// Scan walks root and invokes onFile once per successfully parsed Python
// file, with the file's path relative to root and its definitions. Read or
// parse failures on a single file are logged and skipped; the remainder of
// the tree is still visited. Only a missing or unreadable root is a hard
// failure.
func (c *Crawler) Scan(root string, onFile func(relPath string, defs []pysrc.Definition)) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("scan root %s: %w", root, err)
	}

	c.gitignore = loadGitignore(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path != root && c.ignoredDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if c.gitignore != nil && c.gitignore.MatchesPath(rel) {
			return nil
		}

		source, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Warn().Err(readErr).Str("file", rel).Msg("skipping unreadable file")
			return nil
		}

		tree, parseErr := pysrc.Parse(source)
		if parseErr != nil || tree.RootNode().HasError() {
			// Malformed files are skipped whole, never partially indexed.
			log.Warn().Str("file", rel).Msg("skipping unparseable file")
			return nil
		}

		onFile(rel, pysrc.CollectDefinitions(tree.RootNode(), source))
		return nil
	})
}

func (c *Crawler) ignoredDir(path string) bool {
	for _, marker := range c.ignored {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
