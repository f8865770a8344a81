package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/econbrief/econbrief/internal/prompt"
)

func newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List prompt templates and their placeholders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := prompt.NewCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, kind := range prompt.Kinds {
				names, err := catalog.Placeholders(kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", kind, strings.Join(names, ", "))
			}
			return nil
		},
	}
}
