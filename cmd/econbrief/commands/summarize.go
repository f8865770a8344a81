package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/econbrief/econbrief/internal/app"
	"github.com/econbrief/econbrief/internal/prompt"
	"github.com/econbrief/econbrief/internal/summarizer"
)

func newSummarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <country>",
		Short: "Fetch a country's indicators and print an LLM summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			parameter, _ := cmd.Flags().GetString("parameter")
			brief, _ := cmd.Flags().GetBool("brief")

			catalog, err := prompt.NewCatalog()
			if err != nil {
				return err
			}

			var completer summarizer.Completer
			if cfg.LLM.APIKey == "" {
				logger.Warn("LLM_API_KEY not set, using offline summaries")
				completer = &summarizer.StaticCompleter{}
			} else {
				completer = summarizer.NewOpenAIClient(cfg.LLM, logger)
			}
			service := summarizer.NewService(catalog, completer, summarizer.Options{
				Temperature:      cfg.LLM.Temperature,
				MaxTokens:        cfg.LLM.MaxTokens,
				SummaryMaxTokens: cfg.LLM.SummaryMaxTokens,
			})

			provider := app.NewProvider(cfg.Provider)
			record, err := provider.Fetch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}

			var summary string
			if brief {
				summary, err = service.CountrySummary(cmd.Context(), record)
			} else {
				_, summary, err = service.ParameterSummary(cmd.Context(), record, parameter)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringP("parameter", "p", "", "population_density, trade or import_export (default comprehensive)")
	cmd.Flags().Bool("brief", false, "use the short country summary instead of a parameter analysis")
	return cmd
}
