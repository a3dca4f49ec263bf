package extractor

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/polyscan/domain"
)

// Fallback extracts structure from raw text with per-language line patterns.
// It is used when no grammar is loaded or grammar-based extraction failed.
func Fallback(lang domain.Language, content string) domain.Structure {
	switch lang {
	case domain.LanguageJavaScript, domain.LanguageTypeScript:
		return scanBraces(content, jsPatterns)
	case domain.LanguagePython:
		return scanIndented(content, pythonPatterns)
	case domain.LanguageRuby:
		return scanIndented(content, rubyPatterns)
	case domain.LanguageJava, domain.LanguageCSharp:
		return scanBraces(content, javaPatterns)
	case domain.LanguageGo:
		return scanBraces(content, goPatterns)
	case domain.LanguageRust:
		return scanBraces(content, rustPatterns)
	case domain.LanguagePHP:
		return scanBraces(content, phpPatterns)
	case domain.LanguageC, domain.LanguageCPP:
		return scanBraces(content, cPatterns)
	case domain.LanguageMarkdown:
		return scanMarkdown(content)
	default:
		return domain.NewStructure()
	}
}

// patternSet holds the line patterns of one language. Each pattern captures
// the declared name in its first group.
type patternSet struct {
	classes []*regexp.Regexp
	// containers make the following block a class body without an entry;
	// they need no capture group
	containers []*regexp.Regexp
	// functions are methods when they appear anywhere inside a class body
	functions []*regexp.Regexp
	// members are only tried on lines directly inside a class body
	members []*regexp.Regexp
	// methods are always methods (Go receivers)
	methods []*regexp.Regexp
	// qualifiedMethods treats names like Foo::bar as methods named bar
	qualifiedMethods bool
}

// controlKeywords look like calls followed by a block but never declare anything
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "else": true, "new": true, "do": true, "try": true,
	"function": true, "elif": true, "foreach": true, "using": true,
	"lock": true, "fixed": true, "sizeof": true, "typeof": true, "with": true,
}

var jsPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`),
		regexp.MustCompile(`^\s*(?:export\s+)?(?:declare\s+)?interface\s+([A-Za-z_$][\w$]*)`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*[<(]`),
		regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=]+)?=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*(?::[^=]+)?=>|[A-Za-z_$][\w$]*\s*=>)`),
	},
	members: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|async|readonly|override|get|set)\s+)*\*?\s*([A-Za-z_$#][\w$]*)\s*(?:<[^>]*>)?\s*\([^)]*\)\s*(?::\s*[^{]+)?\{`),
	},
}

var pythonPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`),
	},
}

var rubyPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:class|module)\s+([A-Z][\w:]*)`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*def\s+(?:self\.)?([A-Za-z_][\w]*[?!=]?)`),
	},
}

var javaPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|abstract|final|sealed|partial|readonly|non-sealed)\s+)*(?:class|interface|enum|record|struct)\s+([A-Za-z_]\w*)`),
	},
	members: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:@\w+(?:\([^)]*\))?\s+)*(?:(?:public|private|protected|internal|static|final|abstract|synchronized|native|virtual|override|async|sealed|extern|unsafe|default)\s+)*(?:[\w<>\[\],.?]+\s+)?([A-Za-z_]\w*)\s*\([^;]*$`),
	},
}

var goPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*type\s+([A-Za-z_]\w*)(?:\[[^\]]*\])?\s+(?:struct|interface)\b`),
	},
	methods: []*regexp.Regexp{
		regexp.MustCompile(`^\s*func\s*\([^)]*\)\s*([A-Za-z_]\w*)`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*func\s+([A-Za-z_]\w*)`),
	},
}

var rustPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:unsafe\s+)?(?:struct|enum|trait|union)\s+([A-Za-z_]\w*)`),
	},
	containers: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:unsafe\s+)?impl\b`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_]\w*)`),
	},
}

var phpPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:(?:abstract|final|readonly)\s+)*(?:class|interface|trait|enum)\s+([A-Za-z_]\w*)`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|abstract|final)\s+)*function\s+&?\s*([A-Za-z_]\w*)\s*\(`),
	},
}

var cPatterns = patternSet{
	classes: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:template\s*<[^>]*>\s*)?(?:typedef\s+)?(?:class|struct)\s+([A-Za-z_]\w*)[^;()]*$`),
	},
	functions: []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:[\w:*&<>,~]+\s+)+[*&]*\s*([A-Za-z_~][\w:~]*)\s*\([^;]*$`),
	},
	qualifiedMethods: true,
}

// firstMatch returns the first non-keyword name captured by any pattern
func firstMatch(patterns []*regexp.Regexp, line string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(line)
		if m == nil || len(m) < 2 || m[1] == "" {
			continue
		}
		if controlKeywords[m[1]] {
			continue
		}
		return m[1], true
	}
	return "", false
}

// classScope tracks an open class body in a brace-delimited language
type classScope struct {
	depth  int
	opened bool
}

// scanBraces extracts entries from a brace-delimited language, tracking
// brace depth to decide which functions sit inside a class body
func scanBraces(content string, p patternSet) domain.Structure {
	structure := domain.NewStructure()
	var scopes []classScope
	depth := 0
	inBlockComment := false

	for i, line := range strings.Split(content, "\n") {
		code := stripComments(line, &inBlockComment)
		trimmed := strings.TrimSpace(code)
		lineNo := i + 1

		inScope := len(scopes) > 0 && scopes[len(scopes)-1].opened && depth > scopes[len(scopes)-1].depth
		directMember := inScope && depth == scopes[len(scopes)-1].depth+1

		entry := func(name string) domain.StructureEntry {
			return domain.StructureEntry{Name: name, Line: lineNo, Excerpt: strings.TrimSpace(line)}
		}

		pushed := false
		if trimmed != "" {
			if name, ok := firstMatch(p.classes, code); ok {
				structure.AddClass(entry(name))
				scopes = append(scopes, classScope{depth: depth})
				pushed = true
			} else if matchesAny(p.containers, code) {
				scopes = append(scopes, classScope{depth: depth})
				pushed = true
			} else if name, ok := firstMatch(p.methods, code); ok {
				structure.AddMethod(entry(name))
			} else if name, ok := firstMatch(p.functions, code); ok {
				if p.qualifiedMethods && strings.Contains(name, "::") {
					structure.AddMethod(entry(name[strings.LastIndex(name, "::")+2:]))
				} else if inScope {
					structure.AddMethod(entry(name))
				} else {
					structure.AddFunction(entry(name))
				}
			} else if directMember {
				if name, ok := firstMatch(p.members, code); ok {
					structure.AddMethod(entry(name))
				}
			}
		}

		before := depth
		depth += strings.Count(code, "{") - strings.Count(code, "}")
		if depth < 0 {
			depth = 0
		}

		if pushed {
			top := &scopes[len(scopes)-1]
			top.opened = depth > before || strings.Contains(code, "{")
		} else if len(scopes) > 0 && !scopes[len(scopes)-1].opened && depth > scopes[len(scopes)-1].depth {
			scopes[len(scopes)-1].opened = true
		}

		for len(scopes) > 0 && scopes[len(scopes)-1].opened && depth <= scopes[len(scopes)-1].depth {
			scopes = scopes[:len(scopes)-1]
		}
	}

	return structure
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// stripComments removes // line comments and /* */ block comments from a line,
// carrying block state across lines
func stripComments(line string, inBlock *bool) string {
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		if *inBlock {
			if strings.HasPrefix(line[i:], "*/") {
				*inBlock = false
				i++
			}
			continue
		}
		if strings.HasPrefix(line[i:], "/*") {
			*inBlock = true
			i++
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			break
		}
		sb.WriteByte(line[i])
	}
	return sb.String()
}

// indentScope tracks an open class in an indentation-delimited language
type indentScope struct {
	indent int
}

// scanIndented extracts entries from an indentation-delimited language. A
// function is a method when it is indented deeper than an open class.
func scanIndented(content string, p patternSet) domain.Structure {
	structure := domain.NewStructure()
	var scopes []indentScope

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indent := indentWidth(line)
		for len(scopes) > 0 && indent <= scopes[len(scopes)-1].indent {
			scopes = scopes[:len(scopes)-1]
		}

		entry := domain.StructureEntry{Line: i + 1, Excerpt: trimmed}

		if name, ok := firstMatch(p.classes, line); ok {
			entry.Name = name
			structure.AddClass(entry)
			scopes = append(scopes, indentScope{indent: indent})
			continue
		}

		if name, ok := firstMatch(p.functions, line); ok {
			entry.Name = name
			if len(scopes) > 0 {
				structure.AddMethod(entry)
			} else {
				structure.AddFunction(entry)
			}
		}
	}

	return structure
}

// indentWidth measures leading whitespace, counting a tab as four columns
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
