package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "polyscan"

	// ConfigFileName is the default config file name
	ConfigFileName = ".polyscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "POLYSCAN"

	// GrammarFileExtension is the suffix of grammar manifest files
	GrammarFileExtension = ".grammar"
)

// Engine defaults
const (
	// DefaultBatchSize is the number of files analyzed concurrently per batch
	DefaultBatchSize = 10

	// DefaultMaxContentChars bounds the content echoed back in a result
	DefaultMaxContentChars = 10000

	// ContentTruncationMarker is appended to truncated content
	ContentTruncationMarker = "..."

	// DefaultExcerptBytes bounds excerpts of declarations that span many lines
	DefaultExcerptBytes = 100

	// DefaultTrivialLineLength is the longest normalized line ignored by duplication scoring
	DefaultTrivialLineLength = 10

	// DefaultTopN is the length of the largest / most complex file rankings
	DefaultTopN = 10

	// DefaultMaxFileBytes skips larger files during collection
	DefaultMaxFileBytes = 1 << 20
)

// Complexity histogram thresholds (inclusive upper bounds)
const (
	DefaultLowComplexityThreshold    = 10
	DefaultMediumComplexityThreshold = 20
	DefaultHighComplexityThreshold   = 50
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)
