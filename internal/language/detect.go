// Package language maps file paths to source languages by extension.
package language

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/polyscan/domain"
)

// extensionMap is the static extension table. Keys are lower-case and
// include the leading dot.
var extensionMap = map[string]domain.Language{
	// JavaScript / TypeScript
	".js":  domain.LanguageJavaScript,
	".jsx": domain.LanguageJavaScript,
	".mjs": domain.LanguageJavaScript,
	".cjs": domain.LanguageJavaScript,
	".ts":  domain.LanguageTypeScript,
	".tsx": domain.LanguageTypeScript,
	".mts": domain.LanguageTypeScript,
	".cts": domain.LanguageTypeScript,

	".py":  domain.LanguagePython,
	".pyi": domain.LanguagePython,

	".java": domain.LanguageJava,
	".go":   domain.LanguageGo,
	".rs":   domain.LanguageRust,

	// C family
	".c":   domain.LanguageC,
	".h":   domain.LanguageC,
	".cpp": domain.LanguageCPP,
	".cc":  domain.LanguageCPP,
	".cxx": domain.LanguageCPP,
	".hpp": domain.LanguageCPP,
	".hh":  domain.LanguageCPP,
	".cs":  domain.LanguageCSharp,

	".php": domain.LanguagePHP,
	".rb":  domain.LanguageRuby,

	".md":       domain.LanguageMarkdown,
	".markdown": domain.LanguageMarkdown,

	// Data and markup
	".json": domain.LanguageJSON,
	".yaml": domain.LanguageYAML,
	".yml":  domain.LanguageYAML,
	".toml": domain.LanguageTOML,
	".html": domain.LanguageHTML,
	".htm":  domain.LanguageHTML,
	".css":  domain.LanguageCSS,
	".scss": domain.LanguageSCSS,
	".sql":  domain.LanguageSQL,
	".sh":   domain.LanguageShell,
	".bash": domain.LanguageShell,
	".zsh":  domain.LanguageShell,
	".xml":  domain.LanguageXML,
	".txt":  domain.LanguageText,
}

// Detect returns the language of path based on its final extension.
// The second result is false when the extension is not recognized.
func Detect(path string) (domain.Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return domain.LanguageUnsupported, false
	}
	lang, ok := extensionMap[ext]
	return lang, ok
}

// IsTSX reports whether path should be parsed with the TSX grammar variant
func IsTSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tsx")
}

// FamilyOf returns the extraction family of lang
func FamilyOf(lang domain.Language) domain.Family {
	return lang.Family()
}

// Extensions returns every recognized extension, sorted
func Extensions() []string {
	exts := make([]string, 0, len(extensionMap))
	for ext := range extensionMap {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtensionsFor returns the recognized extensions of lang, sorted
func ExtensionsFor(lang domain.Language) []string {
	var exts []string
	for ext, l := range extensionMap {
		if l == lang {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Languages returns every detectable language, sorted by name
func Languages() []domain.Language {
	seen := make(map[domain.Language]bool)
	var langs []domain.Language
	for _, l := range extensionMap {
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}
