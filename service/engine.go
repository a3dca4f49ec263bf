package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/grammar"
	"github.com/ludo-technologies/polyscan/internal/language"
)

// Engine is the entry point of the analysis engine. It owns the grammar
// registry and wires the file, batch and overview services around it.
type Engine struct {
	registry *grammar.Registry
	files    *FileAnalyzerImpl
	batch    *BatchAnalyzerImpl
	overview *OverviewServiceImpl
}

// NewEngine creates an engine. The registry is initialized on first use or
// by calling Initialize.
func NewEngine(cfg *config.Config, logger *logrus.Logger, pm domain.ProgressManager) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	registry := grammar.NewRegistry(&cfg.Grammars, logger)
	files := NewFileAnalyzer(cfg, registry, logger)

	return &Engine{
		registry: registry,
		files:    files,
		batch:    NewBatchAnalyzer(files, cfg.Analysis.BatchSize, pm, logger),
		overview: NewOverviewService(&cfg.Overview),
	}
}

// Initialize loads the grammars. It returns false when the parsing runtime
// is unusable; analysis still works through fallback extraction.
func (e *Engine) Initialize() bool {
	return e.registry.Initialize()
}

// AnalyzeFile analyzes one file
func (e *Engine) AnalyzeFile(ctx context.Context, path string, content string) domain.AnalysisResult {
	e.registry.Initialize()
	return e.files.AnalyzeFile(ctx, path, content)
}

// AnalyzeFiles analyzes files in batches, returning results in input order
func (e *Engine) AnalyzeFiles(ctx context.Context, files []domain.FileInput) []domain.AnalysisResult {
	e.registry.Initialize()
	return e.batch.AnalyzeFiles(ctx, files)
}

// GenerateOverview aggregates results into a codebase overview
func (e *Engine) GenerateOverview(results []domain.AnalysisResult) domain.CodebaseOverview {
	return e.overview.GenerateOverview(results)
}

// SupportedLanguages lists every detectable language and whether a grammar
// is loaded for it
func (e *Engine) SupportedLanguages() []domain.LanguageSupport {
	e.registry.Initialize()

	langs := language.Languages()
	support := make([]domain.LanguageSupport, 0, len(langs))
	for _, lang := range langs {
		support = append(support, domain.LanguageSupport{
			Language:       lang,
			Family:         lang.Family().String(),
			Extensions:     language.ExtensionsFor(lang),
			Grammar:        e.registry.HasParser(lang),
			GrammarVersion: e.registry.Version(lang),
		})
	}
	return support
}

var (
	_ domain.FileAnalyzer      = (*Engine)(nil)
	_ domain.BatchAnalyzer     = (*Engine)(nil)
	_ domain.OverviewGenerator = (*Engine)(nil)
	_ domain.FileAnalyzer      = (*FileAnalyzerImpl)(nil)
	_ domain.BatchAnalyzer     = (*BatchAnalyzerImpl)(nil)
	_ domain.OverviewGenerator = (*OverviewServiceImpl)(nil)
)
