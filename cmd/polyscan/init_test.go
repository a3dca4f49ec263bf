package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/polyscan/internal/config"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".polyscan.yaml")

	_, _, err := runCLI(t, "init", "--config", configPath)
	if err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	for _, section := range []string{"grammars:", "analysis:", "metrics:", "overview:", "output:", "collector:", "logging:"} {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Overview.LowThreshold != 10 {
		t.Errorf("Expected standard low threshold 10, got %d", cfg.Overview.LowThreshold)
	}
}

func TestInitCommand_Presets(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "polyscan.yaml")

	_, _, err := runCLI(t, "init", "--config", configPath, "--project", "systems", "--strictness", "strict")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Overview.LowThreshold != 5 || cfg.Overview.HighThreshold != 25 {
		t.Errorf("Expected strict thresholds, got %+v", cfg.Overview)
	}

	found := false
	for _, p := range cfg.Collector.IncludePatterns {
		if p == "**/*.rs" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected systems include patterns, got %v", cfg.Collector.IncludePatterns)
	}
}

func TestInitCommand_UnknownPreset(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "polyscan.yaml")

	if _, _, err := runCLI(t, "init", "--config", configPath, "--project", "mainframe"); err == nil {
		t.Error("Expected error for unknown project preset")
	}
	if _, _, err := runCLI(t, "init", "--config", configPath, "--strictness", "extreme"); err == nil {
		t.Error("Expected error for unknown strictness")
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("No file should be written for invalid presets")
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".polyscan.yaml")

	if err := os.WriteFile(configPath, []byte("existing: true\n"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	_, _, err := runCLI(t, "init", "--config", configPath)
	if err == nil {
		t.Fatal("Expected error when file exists without --force")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	if _, _, err := runCLI(t, "init", "--config", configPath, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(content), "analysis:") {
		t.Error("Config file was not overwritten with new content")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	dir := t.TempDir()
	minimalPath := filepath.Join(dir, "minimal.yaml")
	fullPath := filepath.Join(dir, "full.yaml")

	if _, _, err := runCLI(t, "init", "--config", minimalPath, "--minimal"); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}
	if _, _, err := runCLI(t, "init", "--config", fullPath); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	minimal, _ := os.ReadFile(minimalPath)
	full, _ := os.ReadFile(fullPath)

	if !strings.Contains(string(minimal), "minimal") {
		t.Error("Minimal config should indicate it's minimal")
	}
	if len(minimal) >= len(full) {
		t.Errorf("Minimal config (%d bytes) should be smaller than full config (%d bytes)", len(minimal), len(full))
	}
	if _, err := config.LoadConfig(minimalPath); err != nil {
		t.Errorf("Minimal config does not load: %v", err)
	}
}

func TestInitCommand_InvalidDirectory(t *testing.T) {
	_, _, err := runCLI(t, "init", "--config", "/nonexistent/directory/.polyscan.yaml")
	if err == nil {
		t.Fatal("Expected error when directory doesn't exist")
	}
	if !strings.Contains(err.Error(), "directory does not exist") {
		t.Errorf("Expected 'directory does not exist' error, got: %v", err)
	}
}

func TestInitCommand_Flags(t *testing.T) {
	cmd := initCmd()

	for _, name := range []string{"config", "force", "minimal", "interactive", "project", "strictness"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Missing flag --%s", name)
		}
	}
	if cmd.Flags().Lookup("config").DefValue != ".polyscan.yaml" {
		t.Errorf("Unexpected default config path %q", cmd.Flags().Lookup("config").DefValue)
	}
	if cmd.Flags().ShorthandLookup("i") == nil {
		t.Error("Missing -i shorthand")
	}
}
