package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/polyscan/domain"
)

func TestFallback_JavaScript(t *testing.T) {
	code := `// class Commented {}
export class Foo extends Base {
  constructor(a) {
    if (a) {
      this.a = a;
    }
  }

  async load(id) {
    return fetch(id);
  }
}

export function helper(x) {
  return x;
}

const arrow = (a, b) => a + b;
`
	s := Fallback(domain.LanguageJavaScript, code)

	assert.Equal(t, []string{"Foo"}, names(s.Classes))
	assert.Equal(t, 2, s.Classes[0].Line)
	assert.Equal(t, []string{"constructor", "load"}, names(s.Methods))
	assert.Equal(t, []string{"helper", "arrow"}, names(s.Functions))
	assert.Equal(t, "export function helper(x) {", s.Functions[0].Excerpt)
}

func TestFallback_Python(t *testing.T) {
	code := `class A:
    def m(self):
        def inner():
            pass

def f():
    pass

async def g():
    pass
`
	s := Fallback(domain.LanguagePython, code)

	assert.Equal(t, []string{"A"}, names(s.Classes))
	assert.Equal(t, []string{"m", "inner"}, names(s.Methods))
	assert.Equal(t, []string{"f", "g"}, names(s.Functions))
	assert.Equal(t, 6, s.Functions[0].Line)
}

func TestFallback_Go(t *testing.T) {
	code := `package main

type Server struct {
	addr string
}

func (s *Server) Start() error {
	return nil
}

func main() {
}
`
	s := Fallback(domain.LanguageGo, code)

	assert.Equal(t, []string{"Server"}, names(s.Classes))
	assert.Equal(t, []string{"Start"}, names(s.Methods))
	assert.Equal(t, []string{"main"}, names(s.Functions))
}

func TestFallback_Java(t *testing.T) {
	code := `public class Greeter
{
    private final String name;

    public Greeter(String name) {
        this.name = name;
    }

    public String greet() {
        if (name == null) {
            return "";
        }
        return "hi " + name;
    }
}
`
	s := Fallback(domain.LanguageJava, code)

	assert.Equal(t, []string{"Greeter"}, names(s.Classes))
	assert.Equal(t, []string{"Greeter", "greet"}, names(s.Methods))
	assert.Empty(t, s.Functions)
}

func TestFallback_Rust(t *testing.T) {
	code := `pub struct Point {
    x: i32,
}

impl Point {
    pub fn new() -> Self {
        Point { x: 0 }
    }
}

fn main() {}
`
	s := Fallback(domain.LanguageRust, code)

	assert.Equal(t, []string{"Point"}, names(s.Classes))
	assert.Equal(t, []string{"new"}, names(s.Methods))
	assert.Equal(t, []string{"main"}, names(s.Functions))
}

func TestFallback_Ruby(t *testing.T) {
	code := `class Parser
  def parse
  end
end

def helper
end
`
	s := Fallback(domain.LanguageRuby, code)

	assert.Equal(t, []string{"Parser"}, names(s.Classes))
	assert.Equal(t, []string{"parse"}, names(s.Methods))
	assert.Equal(t, []string{"helper"}, names(s.Functions))
}

func TestFallback_PHP(t *testing.T) {
	code := `<?php
final class Account {
    public static function open() {}
}
function helper() {}
`
	s := Fallback(domain.LanguagePHP, code)

	assert.Equal(t, []string{"Account"}, names(s.Classes))
	assert.Equal(t, []string{"open"}, names(s.Methods))
	assert.Equal(t, []string{"helper"}, names(s.Functions))
}

func TestFallback_CPP(t *testing.T) {
	code := `class Widget {
public:
    void draw() {
    }
};

void Widget::resize(int w) {
}

int main(int argc, char **argv) {
    return 0;
}
`
	s := Fallback(domain.LanguageCPP, code)

	assert.Equal(t, []string{"Widget"}, names(s.Classes))
	assert.Equal(t, []string{"draw", "resize"}, names(s.Methods))
	assert.Equal(t, []string{"main"}, names(s.Functions))
}

func TestFallback_DataLanguagesAreEmpty(t *testing.T) {
	for _, lang := range []domain.Language{domain.LanguageJSON, domain.LanguageYAML, domain.LanguageSQL, domain.LanguageUnsupported} {
		s := Fallback(lang, "class Foo {}\nfunction bar() {}\n")
		assert.True(t, s.IsEmpty(), lang)
		assert.NotNil(t, s.Classes)
	}
}

func TestFallback_Markdown(t *testing.T) {
	code := "# Title\n" +
		"\n" +
		"See [the docs](https://example.com) and ![logo](logo.png).\n" +
		"\n" +
		"```go\n" +
		"# not a heading\n" +
		"[not a link](x)\n" +
		"```\n" +
		"\n" +
		"## Usage ##\n" +
		"\n" +
		"```\n" +
		"plain\n" +
		"```\n"

	s := Fallback(domain.LanguageMarkdown, code)

	require.Len(t, s.Classes, 2)
	assert.Equal(t, domain.StructureEntry{Name: "Title", Line: 1, Excerpt: "# Title"}, s.Classes[0])
	assert.Equal(t, "Usage", s.Classes[1].Name)
	assert.Equal(t, 10, s.Classes[1].Line)

	assert.Equal(t, []string{"go", "code block"}, names(s.Functions))
	assert.Equal(t, 5, s.Functions[0].Line)
	assert.Equal(t, 12, s.Functions[1].Line)

	require.Len(t, s.Methods, 1)
	assert.Equal(t, "the docs", s.Methods[0].Name)
	assert.Equal(t, "[the docs](https://example.com)", s.Methods[0].Excerpt)
	assert.Equal(t, 3, s.Methods[0].Line)
}

func TestFallback_EmptyContent(t *testing.T) {
	s := Fallback(domain.LanguageJavaScript, "")
	assert.True(t, s.IsEmpty())
}

func TestStripComments(t *testing.T) {
	inBlock := false
	assert.Equal(t, "a ", stripComments("a // b", &inBlock))
	assert.Equal(t, "x ", stripComments("x /* start", &inBlock))
	assert.True(t, inBlock)
	assert.Equal(t, " y", stripComments("end */ y", &inBlock))
	assert.False(t, inBlock)
}
