package service

import (
	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
)

// ConfigOverrides holds command-line values that take precedence over the
// configuration file. Zero values leave the file setting untouched.
type ConfigOverrides struct {
	OutputFormat    string
	ShowFiles       bool
	GrammarDir      string
	BatchSize       int
	IncludePatterns []string
	ExcludePatterns []string
	NoGitignore     bool
	LogLevel        string
}

// ConfigurationLoaderImpl loads configuration files and merges CLI overrides
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path. An empty path
// discovers a config file starting at targetPath.
func (c *ConfigurationLoaderImpl) LoadConfig(path string, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads a discovered config file, falling back to defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// FindDefaultConfigFile searches for a configuration file from the current
// directory upward
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	return config.FindConfigFile(".")
}

// MergeConfig returns a copy of base with the overrides applied
func (c *ConfigurationLoaderImpl) MergeConfig(base *config.Config, override ConfigOverrides) *config.Config {
	merged := *base
	merged.Grammars.Disabled = append([]string(nil), base.Grammars.Disabled...)
	merged.Collector.IncludePatterns = append([]string(nil), base.Collector.IncludePatterns...)
	merged.Collector.ExcludePatterns = append([]string(nil), base.Collector.ExcludePatterns...)

	if override.OutputFormat != "" {
		merged.Output.Format = override.OutputFormat
	}

	if override.ShowFiles {
		merged.Output.ShowFiles = true
	}

	if override.GrammarDir != "" {
		merged.Grammars.Dir = override.GrammarDir
	}

	if override.BatchSize > 0 {
		merged.Analysis.BatchSize = override.BatchSize
	}

	// Include patterns replace the configured set; exclude patterns extend it
	if len(override.IncludePatterns) > 0 {
		merged.Collector.IncludePatterns = override.IncludePatterns
	}

	if len(override.ExcludePatterns) > 0 {
		merged.Collector.ExcludePatterns = append(merged.Collector.ExcludePatterns, override.ExcludePatterns...)
	}

	if override.NoGitignore {
		merged.Collector.RespectGitignore = false
	}

	if override.LogLevel != "" {
		merged.Logging.Level = override.LogLevel
	}

	return &merged
}

// ValidateConfig validates the configuration
func (c *ConfigurationLoaderImpl) ValidateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return domain.NewConfigError("invalid configuration", err)
	}
	return nil
}
