// Command servicios-cli runs maintenance and reporting tasks against the
// SQLite database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"servicios/internal/cli"
	"servicios/internal/config"
	applog "servicios/internal/log"
	"servicios/internal/storage"
	"servicios/internal/store"
)

var version = "1.0.0"

// storeOpener is swapped in tests.
type storeOpener func(dbPath string) (store.Store, error)

func openSQLite(dbPath string) (store.Store, error) {
	return storage.NewSQLiteRepository(dbPath)
}

func newRootCmd(open storeOpener) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:   "servicios-cli",
		Short: "Maintenance and reporting for Servicios Integrales",
		Long: `servicios-cli works directly on the SQLite database used by the web
server. Every report is scoped to one user id, the same id the auth proxy
sends in USER_HEADER.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", config.Load().SQLiteDBPath, "SQLite database path (SQLITE_DB_PATH)")

	withStore := func(cmd *cobra.Command, fn func(context.Context, store.Store) error) error {
		st, err := open(dbPath)
		if err != nil {
			return fmt.Errorf("open database %s: %w", dbPath, err)
		}
		defer st.Close()
		return fn(cmd.Context(), st)
	}

	root.AddCommand(
		newMigrateCmd(&dbPath),
		newSummaryCmd(withStore),
		newClientsCmd(withStore),
	)
	return root
}

func main() {
	logger := cli.SetupLogger(applog.ComponentCLI)
	cli.LoadEnvFile(logger)

	if err := newRootCmd(openSQLite).ExecuteContext(context.Background()); err != nil {
		logger.Error("Command execution failed", applog.FieldError, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
