package grammar

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/ludo-technologies/polyscan/domain"
)

// grammarEntry binds a language to its compiled-in grammar
type grammarEntry struct {
	language domain.Language
	// name is the grammar name, also the manifest file stem
	name string
	load func() *sitter.Language
	// variants are alternate grammars loaded together with the main one
	variants map[string]func() *sitter.Language
}

// VariantTSX is the TypeScript grammar variant used for .tsx files
const VariantTSX = "tsx"

// builtinGrammars is the static grammar table. Markdown and data languages
// have no grammar and always use pattern-based extraction.
var builtinGrammars = []grammarEntry{
	{language: domain.LanguageJavaScript, name: "javascript", load: javascript.GetLanguage},
	{
		language: domain.LanguageTypeScript,
		name:     "typescript",
		load:     typescript.GetLanguage,
		variants: map[string]func() *sitter.Language{VariantTSX: tsx.GetLanguage},
	},
	{language: domain.LanguagePython, name: "python", load: python.GetLanguage},
	{language: domain.LanguageJava, name: "java", load: java.GetLanguage},
	{language: domain.LanguageGo, name: "go", load: golang.GetLanguage},
	{language: domain.LanguageRuby, name: "ruby", load: ruby.GetLanguage},
	{language: domain.LanguageC, name: "c", load: c.GetLanguage},
	{language: domain.LanguageCPP, name: "cpp", load: cpp.GetLanguage},
	{language: domain.LanguageCSharp, name: "csharp", load: csharp.GetLanguage},
	{language: domain.LanguagePHP, name: "php", load: php.GetLanguage},
	{language: domain.LanguageRust, name: "rust", load: rust.GetLanguage},
}

// KnownLanguages returns the languages that have a compiled-in grammar
func KnownLanguages() []domain.Language {
	langs := make([]domain.Language, 0, len(builtinGrammars))
	for _, g := range builtinGrammars {
		langs = append(langs, g.language)
	}
	return langs
}

// GrammarName returns the grammar (and manifest) name of lang, or "" when
// the language has no grammar
func GrammarName(lang domain.Language) string {
	for _, g := range builtinGrammars {
		if g.language == lang {
			return g.name
		}
	}
	return ""
}
