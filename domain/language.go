package domain

import (
	"encoding/json"
)

// Language is the canonical identifier of a source language.
// The zero value means the language is not supported.
type Language string

// Languages with structural extraction support
const (
	LanguageUnsupported Language = ""
	LanguageJavaScript  Language = "javascript"
	LanguageTypeScript  Language = "typescript"
	LanguagePython      Language = "python"
	LanguageJava        Language = "java"
	LanguageGo          Language = "go"
	LanguageRuby        Language = "ruby"
	LanguageC           Language = "c"
	LanguageCPP         Language = "cpp"
	LanguageCSharp      Language = "csharp"
	LanguagePHP         Language = "php"
	LanguageRust        Language = "rust"
	LanguageMarkdown    Language = "markdown"
)

// Recognized non-code languages. They are detected but never yield structure.
const (
	LanguageJSON  Language = "json"
	LanguageYAML  Language = "yaml"
	LanguageTOML  Language = "toml"
	LanguageHTML  Language = "html"
	LanguageCSS   Language = "css"
	LanguageSCSS  Language = "scss"
	LanguageSQL   Language = "sql"
	LanguageShell Language = "shell"
	LanguageXML   Language = "xml"
	LanguageText  Language = "text"
)

// Family groups languages that share an extraction strategy.
type Family int

const (
	FamilyNone Family = iota
	FamilyJavaScript
	FamilyPython
	FamilyJava
	FamilyGo
	FamilyGeneric
	FamilyMarkdown
	FamilyData
)

// String returns the family name
func (f Family) String() string {
	switch f {
	case FamilyJavaScript:
		return "javascript"
	case FamilyPython:
		return "python"
	case FamilyJava:
		return "java"
	case FamilyGo:
		return "go"
	case FamilyGeneric:
		return "generic"
	case FamilyMarkdown:
		return "markdown"
	case FamilyData:
		return "data"
	default:
		return "none"
	}
}

// Family returns the extraction family of the language
func (l Language) Family() Family {
	switch l {
	case LanguageJavaScript, LanguageTypeScript:
		return FamilyJavaScript
	case LanguagePython:
		return FamilyPython
	case LanguageJava:
		return FamilyJava
	case LanguageGo:
		return FamilyGo
	case LanguageRuby, LanguageC, LanguageCPP, LanguageCSharp, LanguagePHP, LanguageRust:
		return FamilyGeneric
	case LanguageMarkdown:
		return FamilyMarkdown
	case LanguageJSON, LanguageYAML, LanguageTOML, LanguageHTML, LanguageCSS,
		LanguageSCSS, LanguageSQL, LanguageShell, LanguageXML, LanguageText:
		return FamilyData
	default:
		return FamilyNone
	}
}

// IsSupported reports whether the language was recognized
func (l Language) IsSupported() bool {
	return l != LanguageUnsupported
}

// String returns the language identifier
func (l Language) String() string {
	if l == LanguageUnsupported {
		return "unsupported"
	}
	return string(l)
}

// MarshalJSON encodes the unsupported language as null
func (l Language) MarshalJSON() ([]byte, error) {
	if l == LanguageUnsupported {
		return []byte("null"), nil
	}
	return json.Marshal(string(l))
}

// UnmarshalJSON accepts null as the unsupported language
func (l *Language) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = LanguageUnsupported
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Language(s)
	return nil
}

// MarshalYAML encodes the unsupported language as null
func (l Language) MarshalYAML() (interface{}, error) {
	if l == LanguageUnsupported {
		return nil, nil
	}
	return string(l), nil
}

// LanguageSupport describes how the engine handles one detectable language
type LanguageSupport struct {
	Language   Language `json:"language" yaml:"language"`
	Family     string   `json:"family" yaml:"family"`
	Extensions []string `json:"extensions" yaml:"extensions"`
	// Grammar is true when syntax-tree extraction is available
	Grammar        bool   `json:"grammar" yaml:"grammar"`
	GrammarVersion string `json:"grammarVersion,omitempty" yaml:"grammarVersion,omitempty"`
}
