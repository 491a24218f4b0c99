package index

import (
	"fmt"
	"sort"

	"docforge/internal/pysrc"
)

// Dependencies resolves the best-effort dependency closure for name: the
// normalized source of every indexed symbol whose name appears in the
// representative definition either as a bare-name call target or as a
// bare-name parameter type annotation. Each entry is hard-truncated to
// MaxDependencyLen characters.
//
// When several definitions share the name, the lexicographically first entry
// (by file path, then source) is the representative. ErrNotFound is returned
// for names absent from the index; a present symbol with no resolvable
// dependencies yields an empty, non-nil slice.
func (i *Index) Dependencies(name string) ([]string, error) {
	syms, ok := i.entries[name]
	if !ok || len(syms) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	rep := syms[0]

	def, err := reparse(rep)
	if err != nil {
		// The stored source came out of the normalizer, so this indicates
		// drift in the grammar rather than bad input. Degrade to "no
		// dependencies" instead of failing the lookup.
		return []string{}, nil
	}

	wanted := def.Calls()
	for t := range def.ParamTypeNames() {
		wanted[t] = struct{}{}
	}

	targets := make([]string, 0, len(wanted))
	for t := range wanted {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	deps := []string{}
	for _, target := range targets {
		entries, ok := i.entries[target]
		if !ok {
			continue
		}
		for _, entry := range entries {
			deps = append(deps, truncate(entry.NormalizedSource, MaxDependencyLen))
		}
	}
	return deps, nil
}

// reparse turns a stored normalized source back into a structural
// definition. The definition is at column zero, so it is the first one
// collected from the re-parsed tree.
func reparse(sym Symbol) (pysrc.Definition, error) {
	source := []byte(sym.NormalizedSource)
	tree, err := pysrc.Parse(source)
	if err != nil {
		return pysrc.Definition{}, err
	}
	defs := pysrc.CollectDefinitions(tree.RootNode(), source)
	if len(defs) == 0 {
		return pysrc.Definition{}, fmt.Errorf("no definition in stored source for %s", sym.Name)
	}
	return defs[0], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
