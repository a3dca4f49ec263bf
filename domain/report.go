package domain

import (
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats lists every accepted output format
func ValidOutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatYAML}
}

// IsValid reports whether the format is supported
func (f OutputFormat) IsValid() bool {
	for _, v := range ValidOutputFormats() {
		if f == v {
			return true
		}
	}
	return false
}

// AnalysisReport is the envelope written by the CLI and returned by the use case
type AnalysisReport struct {
	RunID       string           `json:"runId" yaml:"runId"`
	Version     string           `json:"version" yaml:"version"`
	GeneratedAt string           `json:"generatedAt" yaml:"generatedAt"`
	DurationMs  int64            `json:"durationMs" yaml:"durationMs"`
	Overview    CodebaseOverview `json:"overview" yaml:"overview"`
	Files       []AnalysisResult `json:"files,omitempty" yaml:"files,omitempty"`
}

// Failures returns the failed results of the report
func (r *AnalysisReport) Failures() []AnalysisResult {
	var failed []AnalysisResult
	for _, res := range r.Files {
		if !res.Success {
			failed = append(failed, res)
		}
	}
	return failed
}

// OutputFormatter renders an analysis report
type OutputFormatter interface {
	// Format renders the report as a string
	Format(report *AnalysisReport, format OutputFormat) (string, error)

	// Write renders the report to the writer
	Write(report *AnalysisReport, format OutputFormat, writer io.Writer) error
}
