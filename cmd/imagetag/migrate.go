package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"image-search-api/internal/adapters/labelstore"
	"image-search-api/internal/config"
	"image-search-api/internal/logging"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply label table migrations to the local SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.Table.SQLitePath
			}

			table, err := labelstore.OpenSQLiteLabelTable(dbPath, cfg.Table.Name, logging.New(cfg.Log))
			if err != nil {
				return err
			}
			defer table.Close()

			status, err := table.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "database: %s\n", dbPath)
			fmt.Fprintf(out, "version:  %d\n", status.Version)
			fmt.Fprintf(out, "dirty:    %t\n", status.Dirty)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database file path (defaults to SQLITE_PATH)")
	return cmd
}
