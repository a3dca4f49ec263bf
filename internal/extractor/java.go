package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

var (
	javaClassKinds = kindSet(
		"class_declaration",
		"interface_declaration",
		"enum_declaration",
		"record_declaration",
	)
	javaMethodKinds = kindSet(
		"method_declaration",
		"constructor_declaration",
	)
)

func matchJava(n *sitter.Node, _ []byte) role {
	kind := n.Type()
	switch {
	case javaClassKinds[kind]:
		return roleClass
	case javaMethodKinds[kind]:
		return roleFunction
	}
	return roleNone
}
