package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

func TestParseSimpleFunction(t *testing.T) {
	code := `function hello() { return 42; }`

	parser := NewParser("javascript", javascript.GetLanguage())
	defer parser.Close()

	tree, err := parser.Parse(context.Background(), []byte(code))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.Type() != "program" {
		t.Errorf("Expected program, got %s", root.Type())
	}

	if root.NamedChildCount() == 0 {
		t.Fatal("Expected at least one statement")
	}

	fn := root.NamedChild(0)
	if fn.Type() != "function_declaration" {
		t.Errorf("Expected function_declaration, got %s", fn.Type())
	}

	name := fn.ChildByFieldName("name")
	if name == nil || name.Content([]byte(code)) != "hello" {
		t.Errorf("Expected function name 'hello'")
	}
}

func TestParsePython(t *testing.T) {
	code := "class A:\n    def m(self):\n        pass\n"

	parser := NewParser("python", python.GetLanguage())
	defer parser.Close()

	tree, err := parser.ParseFile(context.Background(), "a.py", []byte(code))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	if tree.RootNode().Type() != "module" {
		t.Errorf("Expected module, got %s", tree.RootNode().Type())
	}
	if parser.Name() != "python" {
		t.Errorf("Expected name python, got %s", parser.Name())
	}
	if parser.Language() == nil {
		t.Error("Language should not be nil")
	}
}

func TestParseSyntaxErrorStillReturnsTree(t *testing.T) {
	code := "func main( {"

	parser := NewParser("go", golang.GetLanguage())
	defer parser.Close()

	tree, err := parser.Parse(context.Background(), []byte(code))
	if err != nil {
		t.Fatalf("Parse should recover from syntax errors, got %v", err)
	}
	defer tree.Close()

	if !tree.RootNode().HasError() {
		t.Error("Expected the root node to report an error")
	}
}

func TestParseReusesParser(t *testing.T) {
	parser := NewParser("javascript", javascript.GetLanguage())
	defer parser.Close()

	for _, code := range []string{"let a = 1;", "class B {}", "function c() {}"} {
		tree, err := parser.Parse(context.Background(), []byte(code))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", code, err)
		}
		tree.Close()
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("cancelled")
	err := &ParseError{Language: "go", Filename: "main.go", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
	if err.Error() != "failed to parse main.go as go: cancelled" {
		t.Errorf("unexpected message %q", err.Error())
	}

	bare := &ParseError{Language: "go", Filename: "main.go"}
	if bare.Error() != "failed to parse main.go as go" {
		t.Errorf("unexpected message %q", bare.Error())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	parser := NewParser("javascript", javascript.GetLanguage())
	parser.Close()
	parser.Close()
}
