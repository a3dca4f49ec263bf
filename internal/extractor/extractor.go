// Package extractor finds classes, functions and methods in source files,
// from a tree-sitter syntax tree when a grammar is available and from
// line patterns otherwise.
package extractor

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/constants"
)

// Extractor produces structural summaries
type Extractor struct {
	excerptBytes int
}

// NewExtractor creates an extractor. A nil cfg uses defaults.
func NewExtractor(cfg *config.AnalysisConfig) *Extractor {
	excerptBytes := constants.DefaultExcerptBytes
	if cfg != nil && cfg.ExcerptBytes > 0 {
		excerptBytes = cfg.ExcerptBytes
	}
	return &Extractor{excerptBytes: excerptBytes}
}

// Extract walks a parsed syntax tree. A panic during traversal is returned
// as an error so the caller can fall back to pattern-based extraction.
func (e *Extractor) Extract(lang domain.Language, root *sitter.Node, source []byte) (structure domain.Structure, err error) {
	defer func() {
		if r := recover(); r != nil {
			structure = domain.Structure{}
			err = fmt.Errorf("extraction panicked for %s: %v", lang, r)
		}
	}()

	if root == nil {
		return domain.Structure{}, fmt.Errorf("no syntax tree for %s", lang)
	}

	switch lang.Family() {
	case domain.FamilyJavaScript:
		return walk(root, source, matchJavaScript, firstLineExcerpt), nil
	case domain.FamilyPython:
		return walk(root, source, matchPython, firstLineExcerpt), nil
	case domain.FamilyJava:
		return walk(root, source, matchJava, prefixExcerpt(e.excerptBytes)), nil
	case domain.FamilyGo:
		return walk(root, source, matchGo, firstLineExcerpt), nil
	case domain.FamilyGeneric:
		return walk(root, source, matchGeneric, prefixExcerpt(e.excerptBytes)), nil
	case domain.FamilyMarkdown, domain.FamilyData, domain.FamilyNone:
		return domain.Structure{}, fmt.Errorf("no grammar-based extraction for %s", lang)
	default:
		return domain.Structure{}, fmt.Errorf("unknown language family %s", lang.Family())
	}
}

// Fallback extracts structure from raw text with line patterns. It never fails.
func (e *Extractor) Fallback(lang domain.Language, content string) domain.Structure {
	return Fallback(lang, content)
}
