package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/constants"
)

// BatchAnalyzerImpl implements domain.BatchAnalyzer. Files are analyzed in
// fixed-size batches: concurrently within a batch, one batch after another.
type BatchAnalyzerImpl struct {
	fileAnalyzer domain.FileAnalyzer
	batchSize    int
	progress     domain.ProgressManager
	logger       *logrus.Logger
}

// NewBatchAnalyzer creates a batch analyzer. A nil progress manager disables progress.
func NewBatchAnalyzer(fileAnalyzer domain.FileAnalyzer, batchSize int, pm domain.ProgressManager, logger *logrus.Logger) *BatchAnalyzerImpl {
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &BatchAnalyzerImpl{
		fileAnalyzer: fileAnalyzer,
		batchSize:    batchSize,
		progress:     pm,
		logger:       logger,
	}
}

// AnalyzeFiles returns one result per input, in input order. When ctx is
// cancelled between batches the remaining files are reported as failures.
func (b *BatchAnalyzerImpl) AnalyzeFiles(ctx context.Context, files []domain.FileInput) []domain.AnalysisResult {
	results := make([]domain.AnalysisResult, len(files))
	if len(files) == 0 {
		return results
	}

	task := b.progress.StartTask("Analyzing files", len(files))
	defer task.Complete()

	for start := 0; start < len(files); start += b.batchSize {
		end := min(start+b.batchSize, len(files))

		if err := ctx.Err(); err != nil {
			b.logger.WithError(err).WithField("remaining", len(files)-start).Warn("analysis cancelled")
			for i := start; i < len(files); i++ {
				results[i] = domain.NewFailedResult(files[i].Path, fmt.Sprintf("analysis cancelled: %v", err))
			}
			break
		}

		// Each goroutine writes only its own index
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = b.fileAnalyzer.AnalyzeFile(ctx, files[i].Path, files[i].Content)
				return nil
			})
		}
		_ = g.Wait()

		task.Increment(end - start)
		task.Describe(fmt.Sprintf("%d of %d files analyzed", end, len(files)))
		b.logger.WithFields(logrus.Fields{
			"analyzed": end,
			"total":    len(files),
		}).Debug("batch complete")
	}

	return results
}
