package extractor

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/polyscan/domain"
)

const unnamedCodeBlock = "code block"

var (
	mdHeading = regexp.MustCompile(`^ {0,3}#{1,6}\s+(.+?)\s*#*\s*$`)
	mdFence   = regexp.MustCompile("^ {0,3}(```+|~~~+)\\s*([^`\\s]*)")
	mdLink    = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
)

// scanMarkdown maps a Markdown document onto the structure model: headings
// are classes, fenced code blocks are functions named by their info string,
// and links are methods named by their text. Headings and links inside code
// blocks are ignored.
func scanMarkdown(content string) domain.Structure {
	structure := domain.NewStructure()
	fence := ""

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if m := mdFence.FindStringSubmatch(line); m != nil {
			marker := m[1]
			if fence == "" {
				fence = marker
				name := m[2]
				if name == "" {
					name = unnamedCodeBlock
				}
				structure.AddFunction(domain.StructureEntry{Name: name, Line: lineNo, Excerpt: trimmed})
				continue
			}
			if marker[0] == fence[0] && len(marker) >= len(fence) && strings.TrimSpace(strings.TrimLeft(trimmed, marker[:1])) == "" {
				fence = ""
				continue
			}
		}
		if fence != "" {
			continue
		}

		if m := mdHeading.FindStringSubmatch(line); m != nil {
			structure.AddClass(domain.StructureEntry{Name: m[1], Line: lineNo, Excerpt: trimmed})
		}

		for _, loc := range mdLink.FindAllStringSubmatchIndex(line, -1) {
			// images share link syntax
			if loc[0] > 0 && line[loc[0]-1] == '!' {
				continue
			}
			structure.AddMethod(domain.StructureEntry{
				Name:    line[loc[2]:loc[3]],
				Line:    lineNo,
				Excerpt: line[loc[0]:loc[1]],
			})
		}
	}

	return structure
}
