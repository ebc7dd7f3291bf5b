package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/costlab/costwise/internal/cli"
	"github.com/costlab/costwise/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openMigrateStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}

	cmd.PersistentFlags().String("db", "", "SQLite database to migrate")
	_ = viper.BindPFlag("migrate.db", cmd.PersistentFlags().Lookup("db"))

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openMigrateStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			version, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Schema version: %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
			return nil
		},
	})

	return cmd
}

func openMigrateStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("migrate.db")
	if dbPath == "" {
		return nil, fmt.Errorf("no database given; pass --db or set migrate.db in config")
	}
	return storage.NewSQLiteStorage(dbPath)
}
