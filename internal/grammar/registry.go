// Package grammar owns the set of tree-sitter grammars available to the engine.
package grammar

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/parser"
)

// ErrGrammarUnavailable is returned when no grammar is loaded for a language
var ErrGrammarUnavailable = errors.New("grammar unavailable")

// Registry maps languages to loaded grammars. Lookups are lock-free: the
// maps are only written inside Initialize.
type Registry struct {
	cfg    config.GrammarConfig
	logger *logrus.Logger

	once  sync.Once
	ready bool

	grammars map[domain.Language]*sitter.Language
	variants map[string]*sitter.Language
	versions map[domain.Language]string

	// probe checks that the parsing runtime works; replaced in tests
	probe func() error
}

// NewRegistry creates an uninitialized registry
func NewRegistry(cfg *config.GrammarConfig, logger *logrus.Logger) *Registry {
	if cfg == nil {
		cfg = &config.DefaultConfig().Grammars
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Registry{
		cfg:      *cfg,
		logger:   logger,
		grammars: make(map[domain.Language]*sitter.Language),
		variants: make(map[string]*sitter.Language),
		versions: make(map[domain.Language]string),
		probe:    probeRuntime,
	}
}

// Initialize loads the grammars once. It returns false only when the parsing
// runtime itself is unusable; individual grammars that cannot be loaded are
// logged and skipped. Later calls return the first result.
func (r *Registry) Initialize() bool {
	r.once.Do(func() {
		if err := r.probe(); err != nil {
			r.logger.WithError(err).Error("tree-sitter runtime unavailable")
			return
		}
		r.ready = true

		for _, entry := range builtinGrammars {
			r.load(entry)
		}

		r.logger.WithFields(logrus.Fields{
			"loaded": len(r.grammars),
			"total":  len(builtinGrammars),
			"dir":    r.cfg.Dir,
		}).Debug("grammar registry initialized")
	})

	return r.ready
}

// load loads one grammar entry, honoring the disabled list and the grammar directory
func (r *Registry) load(entry grammarEntry) {
	log := r.logger.WithFields(logrus.Fields{
		"language": entry.language,
		"grammar":  entry.name,
	})

	if r.cfg.IsGrammarDisabled(entry.name) || r.cfg.IsGrammarDisabled(string(entry.language)) {
		log.Debug("grammar disabled by configuration")
		return
	}

	version := "builtin"
	if r.cfg.Dir != "" {
		path := ManifestPath(r.cfg.Dir, entry.name)
		manifest, err := LoadManifest(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.WithField("path", path).Debug("grammar not deployed")
			} else {
				log.WithError(err).Warn("failed to read grammar manifest")
			}
			return
		}
		if !manifest.IsEnabled() {
			log.Debug("grammar disabled by manifest")
			return
		}
		if manifest.Version != "" {
			version = manifest.Version
		}
	}

	lang, err := construct(entry.load)
	if err != nil {
		log.WithError(err).Warn("failed to load grammar")
		return
	}

	for name, loadVariant := range entry.variants {
		variant, err := construct(loadVariant)
		if err != nil {
			log.WithError(err).WithField("variant", name).Warn("failed to load grammar variant")
			continue
		}
		r.variants[name] = variant
	}

	r.grammars[entry.language] = lang
	r.versions[entry.language] = version
}

// HasParser reports whether a grammar is loaded for lang
func (r *Registry) HasParser(lang domain.Language) bool {
	_, ok := r.grammars[lang]
	return ok
}

// GetParser returns a fresh parser for lang. The caller must Close it.
func (r *Registry) GetParser(lang domain.Language) (*parser.Parser, error) {
	grammar, ok := r.grammars[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGrammarUnavailable, lang)
	}
	return parser.NewParser(GrammarName(lang), grammar), nil
}

// GetVariantParser returns a fresh parser for a grammar variant such as
// VariantTSX, falling back to the main grammar of lang when the variant is
// not loaded
func (r *Registry) GetVariantParser(lang domain.Language, variant string) (*parser.Parser, error) {
	if !r.HasParser(lang) {
		return nil, fmt.Errorf("%w: %s", ErrGrammarUnavailable, lang)
	}
	if grammar, ok := r.variants[variant]; ok {
		return parser.NewParser(variant, grammar), nil
	}
	return r.GetParser(lang)
}

// Languages returns the languages with a loaded grammar, sorted
func (r *Registry) Languages() []domain.Language {
	langs := make([]domain.Language, 0, len(r.grammars))
	for lang := range r.grammars {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Version returns the version recorded for a loaded grammar
func (r *Registry) Version(lang domain.Language) string {
	return r.versions[lang]
}

// construct calls a grammar constructor, converting a panic into an error
func construct(load func() *sitter.Language) (lang *sitter.Language, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			lang = nil
			err = fmt.Errorf("grammar constructor panicked: %v", rec)
		}
	}()

	lang = load()
	if lang == nil {
		return nil, errors.New("grammar constructor returned nil")
	}
	return lang, nil
}

// probeRuntime creates and closes a parser to verify the runtime links
func probeRuntime() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parser runtime panicked: %v", rec)
		}
	}()

	p := sitter.NewParser()
	p.Close()
	return nil
}
