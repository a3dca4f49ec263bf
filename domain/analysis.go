package domain

import (
	"context"
)

// FileInput is one file handed to the engine by a file enumerator
type FileInput struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// StructureEntry is one recognized class, function or method
type StructureEntry struct {
	Name    string `json:"name" yaml:"name"`
	Line    int    `json:"line" yaml:"line"`
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}

// Structure groups the declarations found in a file, in document order
type Structure struct {
	Classes   []StructureEntry `json:"classes" yaml:"classes"`
	Functions []StructureEntry `json:"functions" yaml:"functions"`
	Methods   []StructureEntry `json:"methods" yaml:"methods"`
}

// NewStructure returns a structure with empty, non-nil sequences
func NewStructure() Structure {
	return Structure{
		Classes:   []StructureEntry{},
		Functions: []StructureEntry{},
		Methods:   []StructureEntry{},
	}
}

// AddClass appends a class entry
func (s *Structure) AddClass(e StructureEntry) {
	s.Classes = append(s.Classes, e)
}

// AddFunction appends a function entry
func (s *Structure) AddFunction(e StructureEntry) {
	s.Functions = append(s.Functions, e)
}

// AddMethod appends a method entry
func (s *Structure) AddMethod(e StructureEntry) {
	s.Methods = append(s.Methods, e)
}

// IsEmpty reports whether no declaration was recorded
func (s Structure) IsEmpty() bool {
	return len(s.Classes) == 0 && len(s.Functions) == 0 && len(s.Methods) == 0
}

// Metrics is the quality profile of one file
type Metrics struct {
	LineCount            int     `json:"lineCount" yaml:"lineCount"`
	CommentCount         int     `json:"commentCount" yaml:"commentCount"`
	CommentRatio         float64 `json:"commentRatio" yaml:"commentRatio"`
	CyclomaticComplexity int     `json:"cyclomaticComplexity" yaml:"cyclomaticComplexity"`
	DuplicationScore     int     `json:"duplicationScore" yaml:"duplicationScore"`
	ClassCount           int     `json:"classCount" yaml:"classCount"`
	FunctionCount        int     `json:"functionCount" yaml:"functionCount"`
	MethodCount          int     `json:"methodCount" yaml:"methodCount"`
}

// AnalysisResult is the outcome of analyzing one file. A successful result
// carries structure, metrics and content; a failed one carries only the error.
type AnalysisResult struct {
	Success   bool       `json:"success" yaml:"success"`
	Path      string     `json:"path" yaml:"path"`
	Language  Language   `json:"language" yaml:"language"`
	Structure *Structure `json:"structure" yaml:"structure"`
	Metrics   *Metrics   `json:"metrics" yaml:"metrics"`
	Content   *string    `json:"content" yaml:"content"`
	Error     *string    `json:"error" yaml:"error"`
}

// NewSuccessResult builds a successful analysis result
func NewSuccessResult(path string, lang Language, structure Structure, metrics Metrics, content string) AnalysisResult {
	return AnalysisResult{
		Success:   true,
		Path:      path,
		Language:  lang,
		Structure: &structure,
		Metrics:   &metrics,
		Content:   &content,
	}
}

// NewFailedResult builds a failed analysis result
func NewFailedResult(path string, message string) AnalysisResult {
	return AnalysisResult{
		Success: false,
		Path:    path,
		Error:   &message,
	}
}

// ErrorMessage returns the failure message, or "" for successful results
func (r AnalysisResult) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// FileAnalyzer analyzes a single file snapshot
type FileAnalyzer interface {
	AnalyzeFile(ctx context.Context, path string, content string) AnalysisResult
}

// BatchAnalyzer analyzes many files, preserving input order
type BatchAnalyzer interface {
	AnalyzeFiles(ctx context.Context, files []FileInput) []AnalysisResult
}

// OverviewGenerator reduces per-file results into a codebase overview
type OverviewGenerator interface {
	GenerateOverview(results []AnalysisResult) CodebaseOverview
}
