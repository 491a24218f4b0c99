// Package pysrc parses Python source with tree-sitter and provides the
// definition model the index is built from: extraction of function and class
// definitions, docstring-stripping normalization, bare-name call collection
// and literal location lookup.
package pysrc

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parse parses Python source into a tree-sitter tree. A fresh parser is used
// per call; tree-sitter parsers are not safe for concurrent use.
func Parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return parser.ParseCtx(context.Background(), nil, source)
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
