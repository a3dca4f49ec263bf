package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/service"
)

func languagesCmd() *cobra.Command {
	var (
		configPath string
		grammarDir string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and grammar availability",
		Long: `List every language polyscan detects, its file extensions, and whether a
syntax grammar is loaded for it. Languages without a grammar are analyzed
with line-pattern extraction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, ".", service.ConfigOverrides{GrammarDir: grammarDir})
			if err != nil {
				return err
			}

			engine := service.NewEngine(cfg, newLogger(cmd, cfg), nil)
			support := engine.SupportedLanguages()

			if jsonOutput {
				return service.WriteJSON(cmd.OutOrStdout(), map[string]interface{}{"languages": support})
			}
			return writeLanguagesTable(cmd, support)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&grammarDir, "grammar-dir", "", "Directory of grammar manifests")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func writeLanguagesTable(cmd *cobra.Command, support []domain.LanguageSupport) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tFAMILY\tGRAMMAR\tEXTENSIONS")
	for _, s := range support {
		grammar := "-"
		if s.Grammar {
			grammar = s.GrammarVersion
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Language, s.Family, grammar, strings.Join(s.Extensions, " "))
	}
	return tw.Flush()
}
