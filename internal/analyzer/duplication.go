package analyzer

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// DuplicationScore returns the share (0-100) of non-trivial lines that repeat
// an earlier line of the same file. Lines are trimmed; blank lines, lines
// starting with // or #, and lines no longer than trivialLength runes are
// ignored. Only the second and later occurrences of a line are duplicates.
func DuplicationScore(content string, trivialLength int) int {
	seen := make(map[uint64]int)
	considered := 0
	duplicated := 0

	for _, line := range strings.Split(content, "\n") {
		normalized := strings.TrimSpace(line)
		if normalized == "" || strings.HasPrefix(normalized, "//") || strings.HasPrefix(normalized, "#") {
			continue
		}
		if utf8.RuneCountInString(normalized) <= trivialLength {
			continue
		}

		considered++
		key := xxhash.Sum64String(normalized)
		seen[key]++
		if seen[key] > 1 {
			duplicated++
		}
	}

	if considered == 0 {
		return 0
	}

	score := int(math.Round(100 * float64(duplicated) / float64(considered)))
	if score > 100 {
		return 100
	}
	return score
}
