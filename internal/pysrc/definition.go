package pysrc

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind distinguishes the two definition constructs the index cares about.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
)

// Definition is a single function or class construct found in a parsed file.
// It keeps a handle on its tree-sitter node so normalization and call
// collection can re-walk the subtree without re-parsing.
type Definition struct {
	Name string
	Kind Kind

	node   *sitter.Node
	source []byte
}

// CollectDefinitions walks the whole tree and returns every function and
// class definition, top-level and nested. Nested definitions are returned as
// independent entries keyed by their own name, not qualified by the
// enclosing class or function.
func CollectDefinitions(root *sitter.Node, source []byte) []Definition {
	var defs []Definition
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			if name := n.ChildByFieldName("name"); name != nil {
				defs = append(defs, Definition{
					Name:   NodeText(name, source),
					Kind:   KindFunction,
					node:   n,
					source: source,
				})
			}
		case "class_definition":
			if name := n.ChildByFieldName("name"); name != nil {
				defs = append(defs, Definition{
					Name:   NodeText(name, source),
					Kind:   KindClass,
					node:   n,
					source: source,
				})
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	return defs
}

// Calls returns the bare-name call targets invoked anywhere in the
// definition's body.
func (d Definition) Calls() map[string]struct{} {
	return CollectCalls(d.node, d.source)
}

// ParamTypeNames returns the distinct bare-identifier type annotations on the
// definition's direct parameters. Subscripted or otherwise complex
// annotations are ignored, as are class definitions (which have no
// parameters).
func (d Definition) ParamTypeNames() map[string]struct{} {
	types := make(map[string]struct{})
	if d.Kind != KindFunction {
		return types
	}
	params := d.node.ChildByFieldName("parameters")
	if params == nil {
		return types
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "typed_parameter", "typed_default_parameter":
			t := p.ChildByFieldName("type")
			if t == nil {
				continue
			}
			if t.NamedChildCount() == 1 && t.NamedChild(0).Type() == "identifier" {
				types[NodeText(t.NamedChild(0), d.source)] = struct{}{}
			}
		}
	}
	return types
}

// CollectCalls traverses the full subtree under node and records the callee
// identifier for every call whose target is a bare name. Attribute calls
// (obj.foo()) and calls through computed expressions are skipped.
func CollectCalls(node *sitter.Node, source []byte) map[string]struct{} {
	calls := make(map[string]struct{})
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "call" {
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
				calls[NodeText(fn, source)] = struct{}{}
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(node)
	return calls
}
