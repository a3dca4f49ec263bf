package service

import (
	"sort"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/config"
)

// OverviewServiceImpl implements domain.OverviewGenerator
type OverviewServiceImpl struct {
	config config.OverviewConfig
}

// NewOverviewService creates an overview service. A nil cfg uses defaults.
func NewOverviewService(cfg *config.OverviewConfig) *OverviewServiceImpl {
	if cfg == nil {
		cfg = &config.DefaultConfig().Overview
	}
	return &OverviewServiceImpl{config: *cfg}
}

// GenerateOverview aggregates per-file results. Failed results only count
// towards FileCount and FailedCount.
func (s *OverviewServiceImpl) GenerateOverview(results []domain.AnalysisResult) domain.CodebaseOverview {
	overview := domain.NewCodebaseOverview()
	overview.FileCount = len(results)

	var (
		complexitySum   float64
		duplicationSum  float64
		commentRatioSum float64
		rankings        []domain.FileRanking
	)

	for _, r := range results {
		if !r.Success || r.Metrics == nil {
			overview.FailedCount++
			continue
		}
		overview.AnalyzedCount++
		m := r.Metrics

		if r.Language.IsSupported() {
			overview.LanguageBreakdown[r.Language]++
		}
		overview.TotalLines += m.LineCount
		complexitySum += float64(m.CyclomaticComplexity)
		duplicationSum += float64(m.DuplicationScore)
		commentRatioSum += m.CommentRatio

		overview.ComplexityDistribution.Add(domain.ComplexityBucket(s.config.Bucket(m.CyclomaticComplexity)))

		overview.TotalClasses += m.ClassCount
		overview.TotalFunctions += m.FunctionCount
		overview.TotalMethods += m.MethodCount

		rankings = append(rankings, domain.FileRanking{
			Path:       r.Path,
			LineCount:  m.LineCount,
			Complexity: m.CyclomaticComplexity,
			Language:   r.Language,
		})
	}

	if overview.AnalyzedCount > 0 {
		n := float64(overview.AnalyzedCount)
		overview.AverageComplexity = complexitySum / n
		overview.AverageDuplication = duplicationSum / n
		overview.AverageCommentRatio = commentRatioSum / n
	}

	overview.LargestFiles = topRankings(rankings, s.config.TopN, func(a, b domain.FileRanking) bool {
		return a.LineCount > b.LineCount
	})
	overview.MostComplexFiles = topRankings(rankings, s.config.TopN, func(a, b domain.FileRanking) bool {
		return a.Complexity > b.Complexity
	})

	return overview
}

// topRankings stable-sorts a copy of rankings and returns at most n entries.
// Ties keep input order.
func topRankings(rankings []domain.FileRanking, n int, less func(a, b domain.FileRanking) bool) []domain.FileRanking {
	sorted := make([]domain.FileRanking, len(rankings))
	copy(sorted, rankings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
