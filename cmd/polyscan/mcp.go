package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/polyscan/internal/mcpserver"
	"github.com/ludo-technologies/polyscan/service"
)

func mcpCmd() *cobra.Command {
	var (
		configPath string
		grammarDir string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analysis engine over MCP stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the tools
analyze_file, analyze_files, codebase_overview and supported_languages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, ".", service.ConfigOverrides{GrammarDir: grammarDir})
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			ctx, cancel := signalContext(cmd)
			defer cancel()

			engine := service.NewEngine(cfg, logger, nil)
			return mcpserver.New(engine, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&grammarDir, "grammar-dir", "", "Directory of grammar manifests")

	return cmd
}
