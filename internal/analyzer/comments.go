package analyzer

import (
	"strings"

	"github.com/ludo-technologies/polyscan/domain"
)

// commentStyle groups languages by comment syntax
type commentStyle int

const (
	commentStyleNone commentStyle = iota
	commentStyleC
	commentStylePython
)

func commentStyleOf(lang domain.Language) commentStyle {
	switch lang {
	case domain.LanguageC, domain.LanguageCPP, domain.LanguageJava, domain.LanguageCSharp,
		domain.LanguageJavaScript, domain.LanguageTypeScript, domain.LanguageGo:
		return commentStyleC
	case domain.LanguagePython:
		return commentStylePython
	default:
		return commentStyleNone
	}
}

// CountCommentLines counts lines that are comments in a single forward pass.
// Languages without a known comment syntax count zero.
func CountCommentLines(lang domain.Language, content string) int {
	lines := strings.Split(content, "\n")
	switch commentStyleOf(lang) {
	case commentStyleC:
		return countCStyleComments(lines)
	case commentStylePython:
		return countPythonComments(lines)
	default:
		return 0
	}
}

// countCStyleComments counts // lines and every line of /* */ blocks,
// including continuation lines such as " * text */"
func countCStyleComments(lines []string) int {
	count := 0
	inBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			count++
			if strings.Contains(trimmed, "*/") {
				inBlock = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "//"):
			count++
		case strings.HasPrefix(trimmed, "/*"):
			count++
			if !strings.Contains(trimmed[2:], "*/") {
				inBlock = true
			}
		default:
			// a block opened after code continues on the following lines
			if idx := strings.LastIndex(trimmed, "/*"); idx >= 0 && !strings.Contains(trimmed[idx+2:], "*/") {
				inBlock = true
			}
		}
	}

	return count
}

// countPythonComments counts # lines and docstring lines. A multi-line
// docstring counts each of its lines once.
func countPythonComments(lines []string) int {
	count := 0
	delim := ""

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if delim != "" {
			count++
			if strings.Contains(trimmed, delim) {
				delim = ""
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			count++
		case strings.HasPrefix(trimmed, `"""`), strings.HasPrefix(trimmed, `'''`):
			count++
			quote := trimmed[:3]
			if !strings.Contains(trimmed[3:], quote) {
				delim = quote
			}
		}
	}

	return count
}
