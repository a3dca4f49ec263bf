package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/polyscan/app"
	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/constants"
	"github.com/ludo-technologies/polyscan/service"
)

type analyzeOptions struct {
	outputFormat string
	jsonOutput   bool
	yamlOutput   bool
	configPath   string
	grammarDir   string
	batchSize    int
	include      []string
	exclude      []string
	noGitignore  bool
	showFiles    bool
	outputPath   string
	verbose      bool
}

func analyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Analyze source files",
		Long: `Analyze source files for structure and quality metrics.

Directories are walked recursively; files are filtered by the configured
include/exclude globs, the root .gitignore and language detection.

Examples:
  polyscan analyze src/
  polyscan analyze --json src/ > report.json
  polyscan analyze --format yaml --show-files .
  polyscan analyze --exclude "**/testdata" --batch-size 20 .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "",
		"Output format: text, json, yaml (default from config, else text)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&opts.yamlOutput, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&opts.grammarDir, "grammar-dir", "",
		"Directory of grammar manifests; only listed grammars are loaded")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0,
		"Number of files analyzed concurrently (default from config)")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil,
		"Glob patterns of files to include (replaces configured patterns)")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil,
		"Glob patterns of paths to exclude (added to configured patterns)")
	cmd.Flags().BoolVar(&opts.noGitignore, "no-gitignore", false,
		"Do not skip files listed in .gitignore")
	cmd.Flags().BoolVar(&opts.showFiles, "show-files", false,
		"List per-file results in text output")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")

	return cmd
}

// resolveFormat picks the output format from the shorthand flags, then --format
func (o *analyzeOptions) resolveFormat() string {
	switch {
	case o.jsonOutput:
		return constants.OutputFormatJSON
	case o.yamlOutput:
		return constants.OutputFormatYAML
	default:
		return o.outputFormat
	}
}

func (o *analyzeOptions) overrides() service.ConfigOverrides {
	ov := service.ConfigOverrides{
		OutputFormat:    o.resolveFormat(),
		ShowFiles:       o.showFiles,
		GrammarDir:      o.grammarDir,
		BatchSize:       o.batchSize,
		IncludePatterns: o.include,
		ExcludePatterns: o.exclude,
		NoGitignore:     o.noGitignore,
	}
	if o.verbose {
		ov.LogLevel = "debug"
	}
	return ov
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}
	if opts.jsonOutput && opts.yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	cfg, err := loadConfig(opts.configPath, args[0], opts.overrides())
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	format := domain.OutputFormat(cfg.Output.Format)

	var writer io.Writer = cmd.OutOrStdout()
	toFile := opts.outputPath != ""
	if toFile {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return domain.NewOutputError("failed to create output file", err)
		}
		defer f.Close()
		writer = f
	}

	// Progress only for interactive text output on stdout
	pm := service.NewProgressManager(format == domain.OutputFormatText && !toFile)
	defer pm.Close()

	engine := service.NewEngine(cfg, logger, pm)
	if !engine.Initialize() {
		logger.Warn("parsing runtime unavailable, using fallback extraction")
	}

	formatter := service.NewOutputFormatter(cfg.Output.ShowFiles)
	if toFile {
		formatter.WithColor(false)
	}

	uc, err := app.NewAnalyzeUseCaseBuilder().
		WithAnalyzer(engine).
		WithFileHelper(app.NewFileHelper(&cfg.Collector, logger)).
		WithFormatter(formatter).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	report, err := uc.Execute(ctx, app.AnalyzeRequest{
		Paths:        args,
		OutputFormat: format,
		OutputWriter: writer,
	})
	if err != nil {
		return err
	}

	if toFile {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s (%d files)\n", opts.outputPath, report.Overview.FileCount)
	}
	return nil
}
