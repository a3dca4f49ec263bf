package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

func matchPython(n *sitter.Node, _ []byte) role {
	switch n.Type() {
	case "class_definition":
		return roleClass
	case "function_definition":
		return roleFunction
	}
	return roleNone
}
