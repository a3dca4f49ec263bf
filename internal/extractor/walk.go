package extractor

import (
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/polyscan/domain"
)

// role is what a syntax node contributes to the structure
type role int

const (
	roleNone role = iota
	// roleClass records a class and makes descendants class members
	roleClass
	// roleContainer makes descendants class members without recording an entry
	roleContainer
	// roleFunction records a function, or a method when inside a class
	roleFunction
	// roleMethod always records a method
	roleMethod
)

// matchFunc classifies a named node for one language family
type matchFunc func(n *sitter.Node, source []byte) role

// excerptFunc renders the excerpt for a matched node
type excerptFunc func(n *sitter.Node, source []byte) string

// identifierKinds are node kinds accepted as a name when no name field exists
var identifierKinds = map[string]bool{
	"identifier":          true,
	"type_identifier":     true,
	"field_identifier":    true,
	"property_identifier": true,
	"constant":            true,
	"name":                true,
}

type frame struct {
	node    *sitter.Node
	inClass bool
}

// walk traverses the tree depth-first with an explicit stack and collects
// entries in document order
func walk(root *sitter.Node, source []byte, match matchFunc, excerpt excerptFunc) domain.Structure {
	structure := domain.NewStructure()
	if root == nil {
		return structure
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.node
		childInClass := f.inClass

		r := match(n, source)
		switch r {
		case roleClass:
			if entry, ok := newEntry(n, source, excerpt); ok {
				structure.AddClass(entry)
			}
			childInClass = true
		case roleContainer:
			childInClass = true
		case roleFunction, roleMethod:
			if entry, ok := newEntry(n, source, excerpt); ok {
				if r == roleMethod || f.inClass {
					structure.AddMethod(entry)
				} else {
					structure.AddFunction(entry)
				}
			}
		}

		// Push in reverse so the first child is visited first
		for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
			child := n.NamedChild(i)
			if child == nil {
				continue
			}
			stack = append(stack, frame{node: child, inClass: childInClass})
		}
	}

	return structure
}

func newEntry(n *sitter.Node, source []byte, excerpt excerptFunc) (domain.StructureEntry, bool) {
	name := nodeName(n, source)
	if name == "" {
		return domain.StructureEntry{}, false
	}

	return domain.StructureEntry{
		Name:    name,
		Line:    int(n.StartPoint().Row) + 1,
		Excerpt: excerpt(n, source),
	}, true
}

// nodeName resolves a declaration name: the name field, then the C-style
// declarator chain, then the first identifier-like child
func nodeName(n *sitter.Node, source []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return strings.TrimSpace(name.Content(source))
	}

	if decl := n.ChildByFieldName("declarator"); decl != nil {
		return declaratorName(decl, source)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && identifierKinds[child.Type()] {
			return strings.TrimSpace(child.Content(source))
		}
	}

	return ""
}

// declaratorName follows nested declarators (pointer, function, reference)
// down to the declared identifier
func declaratorName(decl *sitter.Node, source []byte) string {
	for {
		next := decl.ChildByFieldName("declarator")
		if next == nil {
			break
		}
		decl = next
	}

	// qualified_identifier (Foo::bar) exposes the member as its name
	if name := decl.ChildByFieldName("name"); name != nil {
		return strings.TrimSpace(name.Content(source))
	}

	switch decl.Type() {
	case "parenthesized_declarator", "parameter_list", "abstract_function_declarator":
		return ""
	}
	return strings.TrimSpace(decl.Content(source))
}

// firstLineExcerpt returns the node's first source line
func firstLineExcerpt(n *sitter.Node, source []byte) string {
	text := nodeText(n, source)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// prefixExcerpt returns an excerpt limited to the node's first limit bytes
func prefixExcerpt(limit int) excerptFunc {
	return func(n *sitter.Node, source []byte) string {
		return strings.TrimSpace(truncateBytes(nodeText(n, source), limit))
	}
}

// truncateBytes cuts s to at most limit bytes without splitting a rune
func truncateBytes(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func nodeText(n *sitter.Node, source []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

func hasField(n *sitter.Node, field string) bool {
	return n.ChildByFieldName(field) != nil
}

func kindSet(kinds ...string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
