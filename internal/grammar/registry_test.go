package grammar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/logging"
)

func newTestRegistry(cfg config.GrammarConfig) *Registry {
	return NewRegistry(&cfg, logging.Discard())
}

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(ManifestPath(dir, name), []byte(content), 0644))
}

func TestRegistry_BuiltinGrammars(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{})

	require.True(t, r.Initialize())

	for _, lang := range KnownLanguages() {
		assert.True(t, r.HasParser(lang), "expected grammar for %s", lang)
		assert.Equal(t, "builtin", r.Version(lang))
	}
	assert.False(t, r.HasParser(domain.LanguageMarkdown))
	assert.False(t, r.HasParser(domain.LanguageJSON))
	assert.Len(t, r.Languages(), len(KnownLanguages()))
}

func TestRegistry_InitializeIsIdempotent(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{})

	assert.True(t, r.Initialize())
	before := r.Languages()
	assert.True(t, r.Initialize())
	assert.Equal(t, before, r.Languages())
}

func TestRegistry_NotInitialized(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{})

	assert.False(t, r.HasParser(domain.LanguageGo))
	_, err := r.GetParser(domain.LanguageGo)
	assert.ErrorIs(t, err, ErrGrammarUnavailable)
}

func TestRegistry_MissingDirectory(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{Dir: filepath.Join(t.TempDir(), "does-not-exist")})

	assert.True(t, r.Initialize())
	assert.Empty(t, r.Languages())
	for _, lang := range KnownLanguages() {
		assert.False(t, r.HasParser(lang))
	}
}

func TestRegistry_DirectoryWithSingleGrammar(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "javascript", "")

	r := newTestRegistry(config.GrammarConfig{Dir: dir})

	require.True(t, r.Initialize())
	assert.Equal(t, []domain.Language{domain.LanguageJavaScript}, r.Languages())
	assert.False(t, r.HasParser(domain.LanguagePython))
}

func TestRegistry_ManifestOptions(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "go", "enabled: true\nversion: 0.20.0\n")
	writeManifest(t, dir, "python", "enabled: false\n")
	writeManifest(t, dir, "rust", "enabled: [not, a, bool\n")

	r := newTestRegistry(config.GrammarConfig{Dir: dir})
	require.True(t, r.Initialize())

	assert.True(t, r.HasParser(domain.LanguageGo))
	assert.Equal(t, "0.20.0", r.Version(domain.LanguageGo))
	assert.False(t, r.HasParser(domain.LanguagePython), "enabled: false disables the grammar")
	assert.False(t, r.HasParser(domain.LanguageRust), "invalid manifest disables the grammar")
}

func TestRegistry_DisabledList(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{Disabled: []string{"ruby", "CPP"}})
	require.True(t, r.Initialize())

	assert.False(t, r.HasParser(domain.LanguageRuby))
	assert.False(t, r.HasParser(domain.LanguageCPP))
	assert.True(t, r.HasParser(domain.LanguageC))
}

func TestRegistry_RuntimeProbeFailure(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{})
	r.probe = func() error { return errors.New("no runtime") }

	assert.False(t, r.Initialize())
	assert.Empty(t, r.Languages())
}

func TestRegistry_GetParserReturnsFreshParsers(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{})
	require.True(t, r.Initialize())

	p1, err := r.GetParser(domain.LanguageGo)
	require.NoError(t, err)
	defer p1.Close()
	p2, err := r.GetParser(domain.LanguageGo)
	require.NoError(t, err)
	defer p2.Close()

	assert.NotSame(t, p1, p2)
	assert.Equal(t, "go", p1.Name())

	tree, err := p1.Parse(context.Background(), []byte("package main\nfunc main() {}\n"))
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "source_file", tree.RootNode().Type())
}

func TestRegistry_TSXVariant(t *testing.T) {
	r := newTestRegistry(config.GrammarConfig{})
	require.True(t, r.Initialize())

	p, err := r.GetVariantParser(domain.LanguageTypeScript, VariantTSX)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, VariantTSX, p.Name())

	src := []byte("const App = () => <div>hi</div>;\n")
	tree, err := p.Parse(context.Background(), src)
	require.NoError(t, err)
	defer tree.Close()
	assert.False(t, tree.RootNode().HasError())

	_, err = r.GetVariantParser(domain.LanguageMarkdown, VariantTSX)
	assert.ErrorIs(t, err, ErrGrammarUnavailable)
}

func TestConstruct_RecoversPanics(t *testing.T) {
	_, err := construct(func() *sitter.Language { panic("boom") })
	assert.Error(t, err)

	_, err = construct(func() *sitter.Language { return nil })
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "empty", "")
	writeManifest(t, dir, "off", "enabled: false")

	m, err := LoadManifest(ManifestPath(dir, "empty"))
	require.NoError(t, err)
	assert.True(t, m.IsEnabled())

	m, err = LoadManifest(ManifestPath(dir, "off"))
	require.NoError(t, err)
	assert.False(t, m.IsEnabled())

	_, err = LoadManifest(ManifestPath(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGrammarName(t *testing.T) {
	assert.Equal(t, "go", GrammarName(domain.LanguageGo))
	assert.Equal(t, "csharp", GrammarName(domain.LanguageCSharp))
	assert.Equal(t, "", GrammarName(domain.LanguageMarkdown))
}
