package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/polyscan/internal/constants"
	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Grammars controls which parser grammars the registry loads
	Grammars GrammarConfig `json:"grammars" mapstructure:"grammars" yaml:"grammars"`

	// Analysis holds per-file and batch analysis settings
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Metrics holds metric heuristics settings
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics" yaml:"metrics"`

	// Overview holds codebase aggregation settings
	Overview OverviewConfig `json:"overview" mapstructure:"overview" yaml:"overview"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Collector holds file discovery configuration for the CLI
	Collector CollectorConfig `json:"collector" mapstructure:"collector" yaml:"collector"`

	// Logging holds logger configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging" yaml:"logging"`
}

// GrammarConfig holds configuration for the grammar registry
type GrammarConfig struct {
	// Dir is the grammar directory. When set, only grammars with a
	// <name>.grammar manifest in this directory are loaded. Empty loads
	// every compiled-in grammar.
	Dir string `json:"dir" mapstructure:"dir" yaml:"dir"`

	// Disabled lists languages whose grammar is never loaded
	Disabled []string `json:"disabled" mapstructure:"disabled" yaml:"disabled"`
}

// AnalysisConfig holds configuration for file and batch analysis
type AnalysisConfig struct {
	// BatchSize is the number of files analyzed concurrently
	BatchSize int `json:"batch_size" mapstructure:"batch_size" yaml:"batch_size"`

	// MaxContentChars bounds the content included in each result
	MaxContentChars int `json:"max_content_chars" mapstructure:"max_content_chars" yaml:"max_content_chars"`

	// ExcerptBytes bounds excerpts of multi-line declarations
	ExcerptBytes int `json:"excerpt_bytes" mapstructure:"excerpt_bytes" yaml:"excerpt_bytes"`
}

// MetricsConfig holds configuration for the metrics calculator
type MetricsConfig struct {
	// TrivialLineLength is the longest normalized line excluded from duplication scoring
	TrivialLineLength int `json:"trivial_line_length" mapstructure:"trivial_line_length" yaml:"trivial_line_length"`
}

// OverviewConfig holds configuration for codebase aggregation
type OverviewConfig struct {
	// TopN is the number of entries in the largest / most complex rankings
	TopN int `json:"top_n" mapstructure:"top_n" yaml:"top_n"`

	// LowThreshold is the upper bound for low complexity (inclusive)
	LowThreshold int `json:"low_threshold" mapstructure:"low_threshold" yaml:"low_threshold"`

	// MediumThreshold is the upper bound for medium complexity (inclusive)
	MediumThreshold int `json:"medium_threshold" mapstructure:"medium_threshold" yaml:"medium_threshold"`

	// HighThreshold is the upper bound for high complexity (inclusive).
	// Values above this are very high.
	HighThreshold int `json:"high_threshold" mapstructure:"high_threshold" yaml:"high_threshold"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowFiles includes per-file results in text output
	ShowFiles bool `json:"show_files" mapstructure:"show_files" yaml:"show_files"`
}

// CollectorConfig holds configuration for collecting files to analyze
type CollectorConfig struct {
	// IncludePatterns are doublestar globs matched against paths relative to the root
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns are doublestar globs; matching directories are skipped
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// RespectGitignore skips paths ignored by the root .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`

	// MaxFileBytes skips files larger than this size (0 = no limit)
	MaxFileBytes int64 `json:"max_file_bytes" mapstructure:"max_file_bytes" yaml:"max_file_bytes"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level" mapstructure:"level" yaml:"level"`

	// Format is text or json
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Grammars: GrammarConfig{
			Dir:      "",
			Disabled: []string{},
		},
		Analysis: AnalysisConfig{
			BatchSize:       constants.DefaultBatchSize,
			MaxContentChars: constants.DefaultMaxContentChars,
			ExcerptBytes:    constants.DefaultExcerptBytes,
		},
		Metrics: MetricsConfig{
			TrivialLineLength: constants.DefaultTrivialLineLength,
		},
		Overview: OverviewConfig{
			TopN:            constants.DefaultTopN,
			LowThreshold:    constants.DefaultLowComplexityThreshold,
			MediumThreshold: constants.DefaultMediumComplexityThreshold,
			HighThreshold:   constants.DefaultHighComplexityThreshold,
		},
		Output: OutputConfig{
			Format:    constants.OutputFormatText,
			ShowFiles: false,
		},
		Collector: CollectorConfig{
			IncludePatterns: []string{"**/*"},
			ExcludePatterns: []string{
				// Package managers and dependencies
				"**/node_modules",
				"**/vendor",
				"**/.venv",
				"**/__pycache__",
				// Build outputs
				"**/dist",
				"**/build",
				"**/target",
				// Version control
				"**/.git",
				// Minified and bundled files
				"**/*.min.js",
				"**/*.bundle.js",
				"**/*.map",
			},
			RespectGitignore: true,
			MaxFileBytes:     constants.DefaultMaxFileBytes,
			Recursive:        true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When configPath is empty a config file is discovered from targetPath upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}

	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file, applying
// POLYSCAN_* environment overrides. An empty path yields defaults plus env.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	setDefaults(v, config)

	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers every key with viper so environment overrides apply
// even when no config file exists
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("grammars.dir", cfg.Grammars.Dir)
	v.SetDefault("grammars.disabled", cfg.Grammars.Disabled)

	v.SetDefault("analysis.batch_size", cfg.Analysis.BatchSize)
	v.SetDefault("analysis.max_content_chars", cfg.Analysis.MaxContentChars)
	v.SetDefault("analysis.excerpt_bytes", cfg.Analysis.ExcerptBytes)

	v.SetDefault("metrics.trivial_line_length", cfg.Metrics.TrivialLineLength)

	v.SetDefault("overview.top_n", cfg.Overview.TopN)
	v.SetDefault("overview.low_threshold", cfg.Overview.LowThreshold)
	v.SetDefault("overview.medium_threshold", cfg.Overview.MediumThreshold)
	v.SetDefault("overview.high_threshold", cfg.Overview.HighThreshold)

	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.show_files", cfg.Output.ShowFiles)

	v.SetDefault("collector.include_patterns", cfg.Collector.IncludePatterns)
	v.SetDefault("collector.exclude_patterns", cfg.Collector.ExcludePatterns)
	v.SetDefault("collector.respect_gitignore", cfg.Collector.RespectGitignore)
	v.SetDefault("collector.max_file_bytes", cfg.Collector.MaxFileBytes)
	v.SetDefault("collector.recursive", cfg.Collector.Recursive)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// configCandidates are the config file names searched in each directory
func configCandidates() []string {
	return []string{
		".polyscan.yaml",
		".polyscan.yml",
		"polyscan.yaml",
		"polyscan.yml",
		".polyscan.toml",
		".polyscan.json",
	}
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being analyzed (a file or directory).
func findDefaultConfig(targetPath string) string {
	candidates := configCandidates()

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
	}

	// Check POLYSCAN_CONFIG environment variable as fallback
	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Analysis.BatchSize < 1 {
		return fmt.Errorf("analysis.batch_size must be >= 1, got %d", c.Analysis.BatchSize)
	}

	if c.Analysis.MaxContentChars < 1 {
		return fmt.Errorf("analysis.max_content_chars must be >= 1, got %d", c.Analysis.MaxContentChars)
	}

	if c.Analysis.ExcerptBytes < 1 {
		return fmt.Errorf("analysis.excerpt_bytes must be >= 1, got %d", c.Analysis.ExcerptBytes)
	}

	if c.Metrics.TrivialLineLength < 0 {
		return fmt.Errorf("metrics.trivial_line_length must be >= 0, got %d", c.Metrics.TrivialLineLength)
	}

	if c.Overview.TopN < 0 {
		return fmt.Errorf("overview.top_n must be >= 0, got %d", c.Overview.TopN)
	}

	if c.Overview.LowThreshold < 1 {
		return fmt.Errorf("overview.low_threshold must be >= 1, got %d", c.Overview.LowThreshold)
	}

	if c.Overview.MediumThreshold <= c.Overview.LowThreshold {
		return fmt.Errorf("overview.medium_threshold (%d) must be > low_threshold (%d)",
			c.Overview.MediumThreshold, c.Overview.LowThreshold)
	}

	if c.Overview.HighThreshold <= c.Overview.MediumThreshold {
		return fmt.Errorf("overview.high_threshold (%d) must be > medium_threshold (%d)",
			c.Overview.HighThreshold, c.Overview.MediumThreshold)
	}

	validFormats := map[string]bool{
		constants.OutputFormatText: true,
		constants.OutputFormatJSON: true,
		constants.OutputFormatYAML: true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	if c.Collector.MaxFileBytes < 0 {
		return fmt.Errorf("collector.max_file_bytes must be >= 0, got %d", c.Collector.MaxFileBytes)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging.format '%s', must be one of: text, json", c.Logging.Format)
	}

	return nil
}

// IsGrammarDisabled reports whether the language was disabled by configuration
func (c *GrammarConfig) IsGrammarDisabled(language string) bool {
	for _, d := range c.Disabled {
		if strings.EqualFold(strings.TrimSpace(d), language) {
			return true
		}
	}
	return false
}

// Bucket classifies a complexity value into a histogram bucket name
func (c *OverviewConfig) Bucket(complexity int) string {
	switch {
	case complexity <= c.LowThreshold:
		return "low"
	case complexity <= c.MediumThreshold:
		return "medium"
	case complexity <= c.HighThreshold:
		return "high"
	default:
		return "veryHigh"
	}
}

// FindConfigFile returns the config file that would be used for targetPath,
// or "" when none exists
func FindConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}
