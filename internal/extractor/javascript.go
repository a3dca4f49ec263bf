package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

var (
	jsClassKinds = kindSet(
		"class_declaration",
		"abstract_class_declaration",
		"class",
		"interface_declaration",
	)
	jsFunctionKinds = kindSet(
		"function_declaration",
		"generator_function_declaration",
		"method_definition",
	)
	jsFunctionValueKinds = kindSet(
		"arrow_function",
		"function_expression",
		"function",
		"generator_function",
	)
)

// matchJavaScript classifies JavaScript and TypeScript nodes. Variables
// initialized with a function or arrow function count as functions.
func matchJavaScript(n *sitter.Node, _ []byte) role {
	kind := n.Type()
	switch {
	case jsClassKinds[kind]:
		return roleClass
	case jsFunctionKinds[kind]:
		return roleFunction
	case kind == "variable_declarator":
		if value := n.ChildByFieldName("value"); value != nil && jsFunctionValueKinds[value.Type()] {
			return roleFunction
		}
	}
	return roleNone
}
