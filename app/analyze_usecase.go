package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/version"
)

// Analyzer is the engine surface the use case depends on
type Analyzer interface {
	domain.BatchAnalyzer
	domain.OverviewGenerator
}

// AnalyzeRequest describes one analysis run
type AnalyzeRequest struct {
	Paths []string

	// OutputFormat and OutputWriter are optional; when a writer is set the
	// report is rendered to it
	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
}

// AnalyzeUseCase collects files, analyzes them and builds the report
type AnalyzeUseCase struct {
	analyzer   Analyzer
	fileHelper *FileHelper
	formatter  domain.OutputFormatter
	logger     *logrus.Logger
}

// Execute runs the analysis and returns the report
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req AnalyzeRequest) (*domain.AnalysisReport, error) {
	startTime := time.Now()

	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no paths specified", nil)
	}

	paths, err := uc.fileHelper.CollectFiles(req.Paths)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to collect files", err)
	}
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("no analyzable files found in the specified paths", nil)
	}

	uc.logger.WithField("files", len(paths)).Info("starting analysis")

	results := uc.analyzePaths(ctx, paths)
	overview := uc.analyzer.GenerateOverview(results)

	report := &domain.AnalysisReport{
		RunID:       uuid.NewString(),
		Version:     version.GetVersion(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		DurationMs:  time.Since(startTime).Milliseconds(),
		Overview:    overview,
		Files:       results,
	}

	uc.logger.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"analyzed": overview.AnalyzedCount,
		"failed":   overview.FailedCount,
	}).Info("analysis complete")

	if req.OutputWriter != nil {
		if uc.formatter == nil {
			return nil, domain.NewOutputError("no output formatter configured", nil)
		}
		if err := uc.formatter.Write(report, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// analyzePaths reads every file and analyzes the readable ones. Unreadable
// files become failed results in their original position.
func (uc *AnalyzeUseCase) analyzePaths(ctx context.Context, paths []string) []domain.AnalysisResult {
	results := make([]domain.AnalysisResult, len(paths))
	inputs := make([]domain.FileInput, 0, len(paths))
	positions := make([]int, 0, len(paths))

	for i, path := range paths {
		content, err := uc.fileHelper.ReadFile(path)
		if err != nil {
			uc.logger.WithError(err).WithField("path", path).Warn("failed to read file")
			results[i] = domain.NewFailedResult(path, fmt.Sprintf("failed to read file: %v", err))
			continue
		}
		inputs = append(inputs, domain.FileInput{Path: path, Content: content})
		positions = append(positions, i)
	}

	for j, r := range uc.analyzer.AnalyzeFiles(ctx, inputs) {
		results[positions[j]] = r
	}
	return results
}

// AnalyzeUseCaseBuilder builds an AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	analyzer   Analyzer
	fileHelper *FileHelper
	formatter  domain.OutputFormatter
	logger     *logrus.Logger
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithAnalyzer sets the analysis engine
func (b *AnalyzeUseCaseBuilder) WithAnalyzer(a Analyzer) *AnalyzeUseCaseBuilder {
	b.analyzer = a
	return b
}

// WithFileHelper sets the file helper
func (b *AnalyzeUseCaseBuilder) WithFileHelper(fh *FileHelper) *AnalyzeUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// WithFormatter sets the output formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(f domain.OutputFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = f
	return b
}

// WithLogger sets the logger
func (b *AnalyzeUseCaseBuilder) WithLogger(l *logrus.Logger) *AnalyzeUseCaseBuilder {
	b.logger = l
	return b
}

// Build creates the AnalyzeUseCase
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	if b.analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}

	uc := &AnalyzeUseCase{
		analyzer:   b.analyzer,
		fileHelper: b.fileHelper,
		formatter:  b.formatter,
		logger:     b.logger,
	}

	if uc.logger == nil {
		uc.logger = logrus.StandardLogger()
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper(nil, uc.logger)
	}

	return uc, nil
}
