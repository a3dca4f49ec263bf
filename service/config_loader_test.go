package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
)

func isolateConfigDiscovery(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("POLYSCAN_CONFIG", "")
	return dir
}

func TestConfigurationLoader_LoadConfig_NonExistent(t *testing.T) {
	loader := NewConfigurationLoader()

	_, err := loader.LoadConfig("/nonexistent/polyscan.yaml", "")
	if err == nil {
		t.Fatal("LoadConfig should return error for nonexistent file")
	}
	if !domain.HasCode(err, domain.ErrCodeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestConfigurationLoader_LoadConfig_Invalid(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "polyscan.yaml")
	if err := os.WriteFile(configFile, []byte("analysis:\n  batch_size: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := NewConfigurationLoader().LoadConfig(configFile, "")
	if err == nil {
		t.Error("LoadConfig should reject batch_size 0")
	}
}

func TestConfigurationLoader_LoadConfig_Valid(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "polyscan.yaml")
	content := `analysis:
  batch_size: 4
overview:
  top_n: 3
output:
  format: json
`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg, err := NewConfigurationLoader().LoadConfig(configFile, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Analysis.BatchSize != 4 {
		t.Errorf("Expected batch size 4, got %d", cfg.Analysis.BatchSize)
	}
	if cfg.Overview.TopN != 3 {
		t.Errorf("Expected top_n 3, got %d", cfg.Overview.TopN)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected format json, got %s", cfg.Output.Format)
	}
	if cfg.Analysis.MaxContentChars != 10000 {
		t.Errorf("Unset values should keep defaults, got max_content_chars %d", cfg.Analysis.MaxContentChars)
	}
}

func TestConfigurationLoader_LoadDefaultConfig(t *testing.T) {
	isolateConfigDiscovery(t)

	cfg := NewConfigurationLoader().LoadDefaultConfig()
	if cfg == nil {
		t.Fatal("LoadDefaultConfig should not return nil")
	}
	if cfg.Analysis.BatchSize != 10 {
		t.Errorf("Expected default batch size 10, got %d", cfg.Analysis.BatchSize)
	}
}

func TestConfigurationLoader_FindDefaultConfigFile(t *testing.T) {
	dir := isolateConfigDiscovery(t)
	loader := NewConfigurationLoader()

	if found := loader.FindDefaultConfigFile(); found != "" {
		t.Errorf("Expected no config file, got %s", found)
	}

	if err := os.WriteFile(filepath.Join(dir, ".polyscan.yaml"), []byte("output:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	found := loader.FindDefaultConfigFile()
	if filepath.Base(found) != ".polyscan.yaml" {
		t.Errorf("Expected .polyscan.yaml, got %q", found)
	}

	cfg := loader.LoadDefaultConfig()
	if cfg.Output.Format != "yaml" {
		t.Errorf("Expected discovered config to be loaded, got format %s", cfg.Output.Format)
	}
}

func TestConfigurationLoader_MergeConfig(t *testing.T) {
	loader := NewConfigurationLoader()
	base := config.DefaultConfig()

	merged := loader.MergeConfig(base, ConfigOverrides{
		OutputFormat:    "json",
		ShowFiles:       true,
		GrammarDir:      "/opt/grammars",
		BatchSize:       3,
		IncludePatterns: []string{"src/**"},
		ExcludePatterns: []string{"**/vendor"},
		NoGitignore:     true,
		LogLevel:        "debug",
	})

	if merged.Output.Format != "json" || !merged.Output.ShowFiles {
		t.Errorf("Output overrides not applied: %+v", merged.Output)
	}
	if merged.Grammars.Dir != "/opt/grammars" {
		t.Errorf("Expected grammar dir override, got %q", merged.Grammars.Dir)
	}
	if merged.Analysis.BatchSize != 3 {
		t.Errorf("Expected batch size 3, got %d", merged.Analysis.BatchSize)
	}
	if len(merged.Collector.IncludePatterns) != 1 || merged.Collector.IncludePatterns[0] != "src/**" {
		t.Errorf("Include patterns should be replaced, got %v", merged.Collector.IncludePatterns)
	}
	if got := merged.Collector.ExcludePatterns; got[len(got)-1] != "**/vendor" || len(got) != len(base.Collector.ExcludePatterns)+1 {
		t.Errorf("Exclude patterns should be extended, got %v", got)
	}
	if merged.Collector.RespectGitignore {
		t.Error("NoGitignore should disable gitignore handling")
	}
	if merged.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", merged.Logging.Level)
	}

	// base is untouched
	if base.Output.Format != "text" || base.Analysis.BatchSize != 10 || !base.Collector.RespectGitignore {
		t.Error("MergeConfig must not modify the base config")
	}
}

func TestConfigurationLoader_MergeConfig_ZeroOverrides(t *testing.T) {
	base := config.DefaultConfig()
	base.Output.Format = "yaml"

	merged := NewConfigurationLoader().MergeConfig(base, ConfigOverrides{})

	if merged.Output.Format != "yaml" {
		t.Errorf("Empty override should keep the base format, got %s", merged.Output.Format)
	}
	if merged.Analysis.BatchSize != base.Analysis.BatchSize {
		t.Error("Empty override should keep the base batch size")
	}
}

func TestConfigurationLoader_ValidateConfig(t *testing.T) {
	loader := NewConfigurationLoader()

	if err := loader.ValidateConfig(config.DefaultConfig()); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Output.Format = "html"
	err := loader.ValidateConfig(cfg)
	if err == nil {
		t.Fatal("html output should be rejected")
	}
	if !domain.HasCode(err, domain.ErrCodeConfig) {
		t.Errorf("expected config error code, got %v", err)
	}
}
