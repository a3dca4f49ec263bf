package config

import (
	"strconv"
	"strings"
)

// ProjectType represents the kind of codebase being analyzed
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeWeb     ProjectType = "web"
	ProjectTypeBackend ProjectType = "backend"
	ProjectTypeSystems ProjectType = "systems"
)

// Strictness represents how aggressively complexity is bucketed
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds collector presets for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds histogram thresholds for different strictness levels
type StrictnessPreset struct {
	LowThreshold    int
	MediumThreshold int
	HighThreshold   int
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*"},
			ExcludePatterns: []string{
				"**/.git",
				"**/node_modules",
				"**/vendor",
				"**/dist",
				"**/build",
			},
		},
		ProjectTypeWeb: {
			IncludePatterns: []string{
				"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx",
				"**/*.html", "**/*.css", "**/*.scss", "**/*.md",
			},
			ExcludePatterns: []string{
				"**/.git",
				"**/node_modules",
				"**/dist",
				"**/build",
				"**/.next",
				"**/coverage",
				"**/*.min.js",
				"**/*.bundle.js",
				"**/*.map",
			},
		},
		ProjectTypeBackend: {
			IncludePatterns: []string{
				"**/*.go", "**/*.py", "**/*.java", "**/*.rb",
				"**/*.php", "**/*.cs", "**/*.sql", "**/*.md",
			},
			ExcludePatterns: []string{
				"**/.git",
				"**/vendor",
				"**/.venv",
				"**/__pycache__",
				"**/target",
				"**/bin",
				"**/obj",
			},
		},
		ProjectTypeSystems: {
			IncludePatterns: []string{
				"**/*.c", "**/*.h", "**/*.cpp", "**/*.hpp",
				"**/*.rs", "**/*.go", "**/*.md",
			},
			ExcludePatterns: []string{
				"**/.git",
				"**/target",
				"**/build",
				"**/third_party",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			LowThreshold:    20,
			MediumThreshold: 40,
			HighThreshold:   100,
		},
		StrictnessStandard: {
			LowThreshold:    10,
			MediumThreshold: 20,
			HighThreshold:   50,
		},
		StrictnessStrict: {
			LowThreshold:    5,
			MediumThreshold: 10,
			HighThreshold:   25,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset, ok := GetProjectPresets()[projectType]
	if !ok {
		preset = GetProjectPresets()[ProjectTypeGeneric]
	}
	strict, ok := GetStrictnessPresets()[strictness]
	if !ok {
		strict = GetStrictnessPresets()[StrictnessStandard]
	}

	return `# polyscan configuration
# Every key can be overridden with an environment variable, for example
# POLYSCAN_ANALYSIS_BATCH_SIZE=20

# =============================================================================
# GRAMMARS
# =============================================================================
grammars:
  # Grammar directory. When set, only languages with a <language>.grammar
  # manifest in this directory are parsed with a grammar; every other
  # language uses pattern-based extraction. Leave empty to use all
  # compiled-in grammars.
  dir: ""

  # Languages that always use pattern-based extraction
  disabled: []

# =============================================================================
# ANALYSIS
# =============================================================================
analysis:
  # Files analyzed concurrently; batches run one after another
  batch_size: 10

  # Content echoed back per file (characters)
  max_content_chars: 10000

  # Excerpt length for declarations that span many lines (bytes)
  excerpt_bytes: 100

# =============================================================================
# METRICS
# =============================================================================
metrics:
  # Lines this short (after trimming) are ignored by duplication scoring
  trivial_line_length: 10

# =============================================================================
# OVERVIEW
# =============================================================================
overview:
  # Entries in the largest / most complex file rankings
  top_n: 10

  # Complexity histogram upper bounds (inclusive)
  low_threshold: ` + strconv.Itoa(strict.LowThreshold) + `
  medium_threshold: ` + strconv.Itoa(strict.MediumThreshold) + `
  high_threshold: ` + strconv.Itoa(strict.HighThreshold) + `

# =============================================================================
# OUTPUT
# =============================================================================
output:
  # text, json or yaml
  format: text

  # List every analyzed file in text output
  show_files: false

# =============================================================================
# FILE COLLECTION
# =============================================================================
collector:
  # Glob patterns (doublestar syntax) relative to each analyzed root
  include_patterns:
` + formatYAMLList(preset.IncludePatterns) + `
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns) + `
  # Skip paths ignored by the root .gitignore
  respect_gitignore: true

  # Skip files larger than this many bytes (0 = no limit)
  max_file_bytes: 1048576

  recursive: true

# =============================================================================
# LOGGING
# =============================================================================
logging:
  # debug, info, warn or error
  level: warn

  # text or json
  format: text
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# polyscan configuration (minimal)
# Run 'polyscan init' without --minimal for every option.

analysis:
  batch_size: 10

overview:
  low_threshold: 10
  medium_threshold: 20
  high_threshold: 50

collector:
  include_patterns: ["**/*"]
  exclude_patterns: ["**/.git", "**/node_modules", "**/vendor"]
`
}

// formatYAMLList formats a string slice as an indented YAML block sequence
func formatYAMLList(items []string) string {
	if len(items) == 0 {
		return "    []\n"
	}

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(`    - "`)
		sb.WriteString(item)
		sb.WriteString("\"\n")
	}
	return sb.String()
}
