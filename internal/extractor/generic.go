package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

var (
	genericClassKinds = kindSet(
		"class_declaration",
		"struct_item",
		"enum_item",
		"trait_item",
		"interface_declaration",
		"struct_declaration",
		"trait_declaration",
		"class",
		"module",
	)
	// C and C++ specifiers are only classes when they carry a body
	genericBodyClassKinds = kindSet(
		"class_specifier",
		"struct_specifier",
	)
	genericContainerKinds = kindSet(
		"impl_item",
	)
	genericFunctionKinds = kindSet(
		"function_definition",
		"function_item",
		"function_declaration",
		"method_declaration",
		"constructor_declaration",
		"method",
		"singleton_method",
	)
)

// matchGeneric classifies nodes for every grammar-backed language without a
// dedicated routine: Rust, C, C++, C#, PHP and Ruby
func matchGeneric(n *sitter.Node, _ []byte) role {
	kind := n.Type()
	switch {
	case genericClassKinds[kind]:
		return roleClass
	case genericBodyClassKinds[kind]:
		if hasField(n, "body") {
			return roleClass
		}
	case genericContainerKinds[kind]:
		return roleContainer
	case genericFunctionKinds[kind]:
		return roleFunction
	}
	return roleNone
}
