// Package analyzer computes textual quality metrics for source files.
package analyzer

import (
	"strings"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/constants"
)

// Calculator computes the metrics profile of one file
type Calculator struct {
	trivialLineLength int
}

// NewCalculator creates a calculator. A nil cfg uses defaults.
func NewCalculator(cfg *config.MetricsConfig) *Calculator {
	trivial := constants.DefaultTrivialLineLength
	if cfg != nil && cfg.TrivialLineLength >= 0 {
		trivial = cfg.TrivialLineLength
	}
	return &Calculator{trivialLineLength: trivial}
}

// Calculate computes every metric for content. Each metric is independent of
// the others; counts come from the already extracted structure.
func (c *Calculator) Calculate(lang domain.Language, content string, structure domain.Structure) domain.Metrics {
	lines := CountLines(content)
	comments := CountCommentLines(lang, content)

	return domain.Metrics{
		LineCount:            lines,
		CommentCount:         comments,
		CommentRatio:         CommentRatio(comments, lines),
		CyclomaticComplexity: CyclomaticComplexity(lang, content),
		DuplicationScore:     DuplicationScore(content, c.trivialLineLength),
		ClassCount:           len(structure.Classes),
		FunctionCount:        len(structure.Functions),
		MethodCount:          len(structure.Methods),
	}
}

// CountLines counts newline-separated lines. A trailing newline yields a
// final empty line, and empty content is one line.
func CountLines(content string) int {
	return len(strings.Split(content, "\n"))
}

// CommentRatio returns comments / max(lines, 1)
func CommentRatio(comments, lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	ratio := float64(comments) / float64(lines)
	if ratio > 1 {
		return 1
	}
	return ratio
}
