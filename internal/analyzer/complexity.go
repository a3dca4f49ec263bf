package analyzer

import (
	"regexp"

	"github.com/ludo-technologies/polyscan/domain"
)

// Decision-point patterns per language family. Matches inside comments and
// strings are counted too; the metric is a textual approximation.
var (
	cStyleDecisionPoints = compileAll(
		`\bif\b`,
		`\belse\s+if\b`,
		`\belse\b`,
		`\bfor\b`,
		`\bwhile\b`,
		`\bswitch\b`,
		`\bcase\b`,
		`\bcatch\b`,
		`\?`,
		`&&`,
		`\|\|`,
	)
	pythonDecisionPoints = compileAll(
		`\bif\b`,
		`\belif\b`,
		`\belse\s*:`,
		`\bfor\b`,
		`\bwhile\b`,
		`\bexcept\b`,
		`\band\b`,
		`\bor\b`,
	)
	goDecisionPoints = compileAll(
		`\bif\b`,
		`\belse\s+if\b`,
		`\belse\b`,
		`\bfor\b`,
		`\bswitch\b`,
		`\bselect\b`,
		`\bcase\b`,
		`&&`,
		`\|\|`,
	)
	genericDecisionPoints = compileAll(
		`\bif\b`,
		`\belsif\b`,
		`\belse\b`,
		`\bfor\b`,
		`\bwhile\b`,
		`\bcase\b`,
		`\bwhen\b`,
		`\bmatch\b`,
		`\bcatch\b`,
		`\brescue\b`,
		`&&`,
		`\|\|`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

func decisionPointsOf(lang domain.Language) []*regexp.Regexp {
	switch lang {
	case domain.LanguageC, domain.LanguageCPP, domain.LanguageJava, domain.LanguageCSharp,
		domain.LanguageJavaScript, domain.LanguageTypeScript:
		return cStyleDecisionPoints
	case domain.LanguagePython:
		return pythonDecisionPoints
	case domain.LanguageGo:
		return goDecisionPoints
	case domain.LanguageRust, domain.LanguageRuby, domain.LanguagePHP:
		return genericDecisionPoints
	default:
		return nil
	}
}

// CyclomaticComplexity approximates file complexity as 1 plus the number of
// decision-point token matches. The result is always at least 1.
func CyclomaticComplexity(lang domain.Language, content string) int {
	complexity := 1
	for _, re := range decisionPointsOf(lang) {
		complexity += len(re.FindAllStringIndex(content, -1))
	}
	return complexity
}
