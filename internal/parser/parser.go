package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseError reports that a grammar could not produce a syntax tree
type ParseError struct {
	Language string
	Filename string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s as %s: %v", e.Filename, e.Language, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s as %s", e.Filename, e.Language)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Parser wraps a tree-sitter parser bound to one grammar.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
	name     string
}

// NewParser creates a parser for the given grammar
func NewParser(name string, language *sitter.Language) *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(language)

	return &Parser{
		parser:   parser,
		language: language,
		name:     name,
	}
}

// Name returns the grammar name
func (p *Parser) Name() string {
	return p.name
}

// Language returns the underlying tree-sitter language
func (p *Parser) Language() *sitter.Language {
	return p.language
}

// ParseFile parses source into a syntax tree. The caller must Close the tree.
// Trees containing syntax errors are still returned; tree-sitter recovers
// around them.
func (p *Parser) ParseFile(ctx context.Context, filename string, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		if tree != nil {
			tree.Close()
		}
		return nil, &ParseError{Language: p.name, Filename: filename, Cause: err}
	}
	if tree == nil {
		return nil, &ParseError{Language: p.name, Filename: filename}
	}

	if tree.RootNode() == nil {
		tree.Close()
		return nil, &ParseError{Language: p.name, Filename: filename, Cause: fmt.Errorf("no root node")}
	}

	return tree, nil
}

// Parse parses source with a placeholder filename
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	return p.ParseFile(ctx, "<input>", source)
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}
