package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/constants"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	showFiles bool
	colored   bool
}

// NewOutputFormatter creates a new output formatter. showFiles adds the
// per-file listing to text output; JSON and YAML always carry the files.
func NewOutputFormatter(showFiles bool) *OutputFormatterImpl {
	return &OutputFormatterImpl{
		showFiles: showFiles,
		colored:   !color.NoColor,
	}
}

// WithColor forces colored text output on or off
func (f *OutputFormatterImpl) WithColor(enabled bool) *OutputFormatterImpl {
	f.colored = enabled
	return f
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Format renders the report as a string
func (f *OutputFormatterImpl) Format(report *domain.AnalysisReport, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(report, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the report in the specified format
func (f *OutputFormatterImpl) Write(report *domain.AnalysisReport, format domain.OutputFormat, writer io.Writer) error {
	if report == nil {
		return domain.NewOutputError("no report to write", nil)
	}

	var err error
	switch format {
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, report)
	case domain.OutputFormatText, "":
		err = f.writeText(report, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}

	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s output", format), err)
	}
	return nil
}

func (f *OutputFormatterImpl) heading(s string) string {
	if f.colored {
		return color.CyanString(s)
	}
	return s
}

func (f *OutputFormatterImpl) failure(s string) string {
	if f.colored {
		return color.RedString(s)
	}
	return s
}

func (f *OutputFormatterImpl) dim(s string) string {
	if f.colored {
		return color.HiBlackString(s)
	}
	return s
}

// writeText writes the report as plain text
func (f *OutputFormatterImpl) writeText(report *domain.AnalysisReport, w io.Writer) error {
	o := report.Overview
	tw := &textWriter{w: w}

	tw.printf("\n%s\n", f.heading(fmt.Sprintf("=== %s Analysis Report ===", constants.ToolName)))
	tw.printf("%s\n", f.dim(fmt.Sprintf("Run: %s", report.RunID)))
	tw.printf("Generated: %s\n", report.GeneratedAt)
	tw.printf("Duration: %dms\n", report.DurationMs)
	tw.printf("Version: %s\n\n", report.Version)

	tw.printf("%s\n", f.heading("Summary:"))
	tw.printf("  Files: %d (analyzed %d, failed %d)\n", o.FileCount, o.AnalyzedCount, o.FailedCount)
	tw.printf("  Total lines: %d\n", o.TotalLines)
	tw.printf("  Classes: %d\n", o.TotalClasses)
	tw.printf("  Functions: %d\n", o.TotalFunctions)
	tw.printf("  Methods: %d\n", o.TotalMethods)
	tw.printf("  Average complexity: %.2f\n", o.AverageComplexity)
	tw.printf("  Average duplication: %.1f%%\n", o.AverageDuplication)
	tw.printf("  Average comment ratio: %.2f\n\n", o.AverageCommentRatio)

	if len(o.LanguageBreakdown) > 0 {
		tw.printf("%s\n", f.heading("Languages:"))
		for _, lc := range sortedBreakdown(o.LanguageBreakdown) {
			tw.printf("  %-12s %d\n", lc.language, lc.count)
		}
		tw.printf("\n")
	}

	d := o.ComplexityDistribution
	tw.printf("%s\n", f.heading("Complexity Distribution:"))
	tw.printf("  Low: %d\n", d.Low)
	tw.printf("  Medium: %d\n", d.Medium)
	tw.printf("  High: %d\n", d.High)
	tw.printf("  Very high: %d\n\n", d.VeryHigh)

	if len(o.LargestFiles) > 0 {
		tw.printf("%s\n", f.heading("Largest Files:"))
		for i, r := range o.LargestFiles {
			tw.printf("  %2d. %s (%d lines)\n", i+1, r.Path, r.LineCount)
		}
		tw.printf("\n")
	}

	if len(o.MostComplexFiles) > 0 {
		tw.printf("%s\n", f.heading("Most Complex Files:"))
		for i, r := range o.MostComplexFiles {
			tw.printf("  %2d. %s (complexity %d)\n", i+1, r.Path, r.Complexity)
		}
		tw.printf("\n")
	}

	if failures := report.Failures(); len(failures) > 0 {
		tw.printf("%s\n", f.failure("Failures:"))
		for _, r := range failures {
			tw.printf("  %s: %s\n", r.Path, r.ErrorMessage())
		}
		tw.printf("\n")
	}

	if f.showFiles && len(report.Files) > 0 {
		tw.printf("%s\n", f.heading("Files:"))
		for _, r := range report.Files {
			if !r.Success || r.Metrics == nil {
				continue
			}
			m := r.Metrics
			tw.printf("  %s [%s]\n", r.Path, r.Language)
			tw.printf("    lines %d, complexity %d, duplication %d%%, comments %.2f\n",
				m.LineCount, m.CyclomaticComplexity, m.DuplicationScore, m.CommentRatio)
			tw.printf("    classes %d, functions %d, methods %d\n", m.ClassCount, m.FunctionCount, m.MethodCount)
		}
	}

	return tw.err
}

// textWriter remembers the first write error
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

type languageCount struct {
	language domain.Language
	count    int
}

// sortedBreakdown orders languages by file count, then name
func sortedBreakdown(breakdown map[domain.Language]int) []languageCount {
	out := make([]languageCount, 0, len(breakdown))
	for lang, n := range breakdown {
		out = append(out, languageCount{language: lang, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].language < out[j].language
	})
	return out
}
