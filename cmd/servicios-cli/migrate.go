package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"servicios/internal/storage"
)

func newMigrateCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Example: `  servicios-cli migrate
  servicios-cli --db /var/lib/servicios/servicios.db migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Opening the repository applies every pending migration.
			repo, err := storage.NewSQLiteRepository(*dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			v, dirty, err := storage.MigrationVersion(storage.DSN(*dbPath))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t) at %s\n", v, dirty, *dbPath)
			return nil
		},
	}
}
