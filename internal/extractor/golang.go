package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// matchGo classifies Go nodes. Struct and interface type specs are classes;
// a declaration with a receiver is a method regardless of nesting.
func matchGo(n *sitter.Node, _ []byte) role {
	switch n.Type() {
	case "type_spec":
		if t := n.ChildByFieldName("type"); t != nil {
			switch t.Type() {
			case "struct_type", "interface_type":
				return roleClass
			}
		}
	case "function_declaration":
		return roleFunction
	case "method_declaration":
		if recv := n.ChildByFieldName("receiver"); recv != nil && recv.NamedChildCount() > 0 {
			return roleMethod
		}
		return roleFunction
	}
	return roleNone
}
