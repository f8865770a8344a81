package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/econbrief/econbrief/internal/app"
	"github.com/econbrief/econbrief/internal/prompt"
	"github.com/econbrief/econbrief/internal/summarizer"
)

func newPromptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt <country>",
		Short: "Print the rendered analysis prompt for a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}
			parameter, _ := cmd.Flags().GetString("parameter")

			catalog, err := prompt.NewCatalog()
			if err != nil {
				return err
			}

			provider := app.NewProvider(cfg.Provider)
			record, err := provider.Fetch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}

			service := summarizer.NewService(catalog, nil, summarizer.Options{})
			_, text, err := service.Prompt(record, parameter)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringP("parameter", "p", "", "population_density, trade or import_export (default comprehensive)")
	return cmd
}
