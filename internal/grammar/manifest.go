package grammar

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/polyscan/internal/constants"
)

// Manifest describes one deployed grammar in the grammar directory.
// An empty manifest file enables the grammar.
type Manifest struct {
	Enabled *bool  `yaml:"enabled"`
	Version string `yaml:"version"`
}

// IsEnabled reports whether the manifest enables its grammar
func (m Manifest) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// ManifestPath returns the manifest location for a grammar name inside dir
func ManifestPath(dir, name string) string {
	return filepath.Join(dir, name+constants.GrammarFileExtension)
}

// LoadManifest reads and parses a grammar manifest
func LoadManifest(path string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("invalid grammar manifest %s: %w", path, err)
	}

	return m, nil
}
