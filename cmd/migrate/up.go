package main

import (
	"errors"

	"shiningstar/internal/app/config"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	Long: `Runs gorm AutoMigrate for all models against the postgres store.
The JSON file store needs no migration.`,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, _ []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return errors.New("up applies to the postgres driver only")
	}
	// миграция выполняется при открытии postgres хранилища
	cmd.Println("Database migration completed successfully")
	return nil
}
