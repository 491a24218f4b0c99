// Package writer generates docstrings and commit messages through an LLM
// backend. The indexing core treats these as opaque collaborators: it hands
// over a symbol name, its normalized source and its dependency sources, and
// gets back a single string or an error.
package writer

import (
	"context"
	"strings"
)

// DocRequest carries everything a backend needs to document one symbol.
type DocRequest struct {
	Name         string
	Source       string   // normalized source of the symbol
	Dependencies []string // normalized sources of resolved dependencies
	Instruction  string   // optional free-text instruction
}

// Writer is implemented by each generation backend.
type Writer interface {
	WriteDocstring(ctx context.Context, req DocRequest) (string, error)
	WriteModuleDoc(ctx context.Context, moduleName, source, instruction string) (string, error)
	WriteCommitMessage(ctx context.Context, diff, instruction string) (string, error)
}

// ignoreMarkers excludes a definition from batch generation when any variant
// appears near the top of its source.
var ignoreMarkers = []string{
	"docforge:ignore",
	"docforge: ignore",
	"docforge :ignore",
	"docforge : ignore",
}

// IgnoreMarked reports whether the definition opts out of generation via an
// ignore marker in its first 150 characters.
func IgnoreMarked(source string) bool {
	head := source
	if len(head) > 150 {
		head = head[:150]
	}
	for _, marker := range ignoreMarkers {
		if strings.Contains(head, marker) {
			return true
		}
	}
	return false
}

// FormatDocstring strips quotes, whitespace and markdown fences from a raw
// model response and wraps it in a triple-quoted block ready to paste.
func FormatDocstring(raw string) string {
	s := cleanFences(raw)
	s = strings.Trim(s, " '\"\n")
	return "\"\"\"\n" + s + "\n\"\"\""
}

func cleanFences(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range []string{"```python", "```markdown", "```"} {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			text = strings.TrimSuffix(text, "```")
			break
		}
	}
	return strings.TrimSpace(text)
}
