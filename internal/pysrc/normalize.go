package pysrc

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const indentUnit = "    "

// Normalize re-serializes the definition with every leading documentation
// string removed and reports whether the definition itself carried one.
//
// The serialization is canonical in the sense the rest of the system relies
// on: four-space indentation per nesting level, the definition dedented to
// column zero, single-line bodies expanded onto their own lines, and
// docstrings stripped from the definition and from every directly nested
// function or class. Statements other than definitions are re-emitted from
// the original source with their relative indentation preserved.
//
// Normalize never mutates the parse tree; it only reads it, so other holders
// of the same tree keep seeing the original definition.
func (d Definition) Normalize() (string, bool) {
	r := renderer{source: d.source, target: d.node.StartByte()}
	top := d.node
	if p := top.Parent(); p != nil && p.Type() == "decorated_definition" {
		top = p
	}
	lines := r.renderStatement(top, 0)
	return strings.Join(lines, "\n"), r.hadDoc
}

type renderer struct {
	source []byte
	// target identifies the definition whose own docstring decides hadDoc;
	// docstrings of nested definitions are stripped but not recorded.
	target uint32
	hadDoc bool
}

func (r *renderer) renderStatement(node *sitter.Node, depth int) []string {
	switch node.Type() {
	case "decorated_definition":
		var lines []string
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() == "decorator" {
				lines = append(lines, r.rawLines(child, depth)...)
			} else if child.IsNamed() {
				lines = append(lines, r.renderStatement(child, depth)...)
			}
		}
		return lines
	case "function_definition", "class_definition":
		return r.renderDefinition(node, depth)
	default:
		return r.rawLines(node, depth)
	}
}

func (r *renderer) renderDefinition(node *sitter.Node, depth int) []string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return r.rawLines(node, depth)
	}

	header := string(r.source[node.StartByte():body.StartByte()])
	header = strings.TrimRight(header, " \t\n\\")
	lines := dedentLines(header, int(node.StartPoint().Column), depth)

	var stmts []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		// Comments are dropped at block level, matching a serializer that
		// re-emits structure rather than trivia.
		if child.Type() == "comment" {
			continue
		}
		stmts = append(stmts, child)
	}

	start := 0
	if len(stmts) > 0 && isDocstringStmt(stmts[0]) {
		if node.StartByte() == r.target {
			r.hadDoc = len(docstringText(stmts[0], r.source)) > 1
		}
		start = 1
	}

	if start == len(stmts) {
		// The body held nothing but a docstring; keep the result parseable.
		lines = append(lines, strings.Repeat(indentUnit, depth+1)+"pass")
		return lines
	}

	for _, stmt := range stmts[start:] {
		lines = append(lines, r.renderStatement(stmt, depth+1)...)
	}
	return lines
}

// rawLines re-emits a statement verbatim, shifted from its original column
// to the canonical indent for depth. Continuation lines keep their
// indentation relative to the statement's first line.
func (r *renderer) rawLines(node *sitter.Node, depth int) []string {
	text := NodeText(node, r.source)
	return dedentLines(text, int(node.StartPoint().Column), depth)
}

func dedentLines(text string, column, depth int) []string {
	indent := strings.Repeat(indentUnit, depth)
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for i, line := range raw {
		if i > 0 {
			line = stripIndent(line, column)
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, indent+line)
	}
	return lines
}

// stripIndent removes at most n leading whitespace characters. Lines that
// are less indented than the statement itself (multi-line string content,
// hanging closers) lose only what they have.
func stripIndent(line string, n int) string {
	removed := 0
	for removed < n && removed < len(line) && (line[removed] == ' ' || line[removed] == '\t') {
		removed++
	}
	return line[removed:]
}

// isDocstringStmt reports whether a statement is a bare string-literal
// expression, the conventional documentation position.
func isDocstringStmt(node *sitter.Node) bool {
	return node.Type() == "expression_statement" &&
		node.NamedChildCount() == 1 &&
		node.NamedChild(0).Type() == "string"
}

// docstringText extracts the trimmed content of a docstring statement.
func docstringText(stmt *sitter.Node, source []byte) string {
	str := stmt.NamedChild(0)
	var b strings.Builder
	for i := 0; i < int(str.ChildCount()); i++ {
		child := str.Child(i)
		if child.Type() == "string_content" {
			b.WriteString(NodeText(child, source))
		}
	}
	content := b.String()
	if content == "" {
		// Grammar versions without string_content nodes: fall back to
		// trimming quote characters off the literal.
		content = strings.Trim(NodeText(str, source), `"'rRbBuUfF`)
	}
	return strings.TrimSpace(content)
}
