package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/analyzer"
	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/constants"
	"github.com/ludo-technologies/polyscan/internal/extractor"
	"github.com/ludo-technologies/polyscan/internal/grammar"
	"github.com/ludo-technologies/polyscan/internal/language"
)

// FileAnalyzerImpl implements domain.FileAnalyzer
type FileAnalyzerImpl struct {
	registry        *grammar.Registry
	extractor       *extractor.Extractor
	calculator      *analyzer.Calculator
	maxContentChars int
	logger          *logrus.Logger
}

// NewFileAnalyzer creates a file analyzer backed by an initialized registry
func NewFileAnalyzer(cfg *config.Config, registry *grammar.Registry, logger *logrus.Logger) *FileAnalyzerImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	maxContent := cfg.Analysis.MaxContentChars
	if maxContent <= 0 {
		maxContent = constants.DefaultMaxContentChars
	}

	return &FileAnalyzerImpl{
		registry:        registry,
		extractor:       extractor.NewExtractor(&cfg.Analysis),
		calculator:      analyzer.NewCalculator(&cfg.Metrics),
		maxContentChars: maxContent,
		logger:          logger,
	}
}

// AnalyzeFile analyzes one file snapshot. It never panics: any failure is
// reported as an unsuccessful result.
func (a *FileAnalyzerImpl) AnalyzeFile(ctx context.Context, path string, content string) (result domain.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("path", path).Errorf("analysis panicked: %v", r)
			result = domain.NewFailedResult(path, fmt.Sprint(r))
		}
	}()

	lang, ok := language.Detect(path)
	if !ok {
		return domain.NewFailedResult(path, domain.ErrUnsupportedLanguage.Error())
	}

	structure := a.extractStructure(ctx, lang, path, content)
	metrics := a.calculator.Calculate(lang, content, structure)

	return domain.NewSuccessResult(path, lang, structure, metrics, truncateContent(content, a.maxContentChars))
}

// extractStructure uses the grammar when one is loaded and falls back to
// line patterns when there is none or it fails
func (a *FileAnalyzerImpl) extractStructure(ctx context.Context, lang domain.Language, path, content string) domain.Structure {
	if a.registry == nil || !a.registry.HasParser(lang) {
		return a.extractor.Fallback(lang, content)
	}

	log := a.logger.WithFields(logrus.Fields{"path": path, "language": lang})

	var variant string
	if language.IsTSX(path) {
		variant = grammar.VariantTSX
	}
	p, err := a.registry.GetVariantParser(lang, variant)
	if err != nil {
		log.WithError(err).Debug("no parser, using fallback extraction")
		return a.extractor.Fallback(lang, content)
	}
	defer p.Close()

	source := []byte(content)
	tree, err := p.ParseFile(ctx, path, source)
	if err != nil {
		log.WithError(err).Debug("parse failed, using fallback extraction")
		return a.extractor.Fallback(lang, content)
	}
	defer tree.Close()

	structure, err := a.extractor.Extract(lang, tree.RootNode(), source)
	if err != nil {
		log.WithError(err).Debug("extraction failed, using fallback extraction")
		return a.extractor.Fallback(lang, content)
	}

	return structure
}

// truncateContent keeps the first max characters and appends a marker when
// anything was cut
func truncateContent(content string, max int) string {
	if utf8.RuneCountInString(content) <= max {
		return content
	}

	n := 0
	for i := range content {
		if n == max {
			return content[:i] + constants.ContentTruncationMarker
		}
		n++
	}
	return content
}
