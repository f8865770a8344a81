package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/econbrief/econbrief/internal/app"
	"github.com/econbrief/econbrief/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			db, err := app.OpenDatabase(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(cmd.Context(), db, cfg.Database.Driver, logger); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations up to date")
			return nil
		},
	}
}
