package domain

// ComplexityBucket names a bucket of the complexity histogram
type ComplexityBucket string

const (
	ComplexityLow      ComplexityBucket = "low"
	ComplexityMedium   ComplexityBucket = "medium"
	ComplexityHigh     ComplexityBucket = "high"
	ComplexityVeryHigh ComplexityBucket = "veryHigh"
)

// ComplexityDistribution counts files per complexity bucket
type ComplexityDistribution struct {
	Low      int `json:"low" yaml:"low"`
	Medium   int `json:"medium" yaml:"medium"`
	High     int `json:"high" yaml:"high"`
	VeryHigh int `json:"veryHigh" yaml:"veryHigh"`
}

// Add increments the given bucket
func (d *ComplexityDistribution) Add(bucket ComplexityBucket) {
	switch bucket {
	case ComplexityLow:
		d.Low++
	case ComplexityMedium:
		d.Medium++
	case ComplexityHigh:
		d.High++
	case ComplexityVeryHigh:
		d.VeryHigh++
	}
}

// Total returns the number of files in the histogram
func (d ComplexityDistribution) Total() int {
	return d.Low + d.Medium + d.High + d.VeryHigh
}

// FileRanking is one entry of the largest / most complex file lists
type FileRanking struct {
	Path       string   `json:"path" yaml:"path"`
	LineCount  int      `json:"lineCount" yaml:"lineCount"`
	Complexity int      `json:"complexity" yaml:"complexity"`
	Language   Language `json:"language" yaml:"language"`
}

// CodebaseOverview is the aggregate view over a set of analysis results
type CodebaseOverview struct {
	// FileCount counts every input result, failures included
	FileCount     int `json:"fileCount" yaml:"fileCount"`
	AnalyzedCount int `json:"analyzedCount" yaml:"analyzedCount"`
	FailedCount   int `json:"failedCount" yaml:"failedCount"`

	LanguageBreakdown map[Language]int `json:"languageBreakdown" yaml:"languageBreakdown"`
	TotalLines        int              `json:"totalLines" yaml:"totalLines"`

	AverageComplexity   float64 `json:"averageComplexity" yaml:"averageComplexity"`
	AverageDuplication  float64 `json:"averageDuplication" yaml:"averageDuplication"`
	AverageCommentRatio float64 `json:"averageCommentRatio" yaml:"averageCommentRatio"`

	ComplexityDistribution ComplexityDistribution `json:"complexityDistribution" yaml:"complexityDistribution"`

	TotalClasses   int `json:"totalClasses" yaml:"totalClasses"`
	TotalFunctions int `json:"totalFunctions" yaml:"totalFunctions"`
	TotalMethods   int `json:"totalMethods" yaml:"totalMethods"`

	LargestFiles     []FileRanking `json:"largestFiles" yaml:"largestFiles"`
	MostComplexFiles []FileRanking `json:"mostComplexFiles" yaml:"mostComplexFiles"`
}

// NewCodebaseOverview returns an overview with zero counts and empty lists
func NewCodebaseOverview() CodebaseOverview {
	return CodebaseOverview{
		LanguageBreakdown: make(map[Language]int),
		LargestFiles:      []FileRanking{},
		MostComplexFiles:  []FileRanking{},
	}
}
