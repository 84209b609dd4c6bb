package main

import (
	"context"
	"fmt"

	"shiningstar/internal/app/seed"

	"github.com/spf13/cobra"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import catalog seed files",
	Long: `Imports services.json, packages.json, portfolio.json and users.json from the
seed directory. Services and packages are validated and upserted by id; invalid
records are reported and skipped.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "data", "directory with the seed files")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	data, err := seed.Load(seedDir)
	if err != nil {
		return err
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rep, err := seed.Apply(context.Background(), store, data)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	cmd.Printf("Imported %d services, %d packages, %d portfolio items, %d users\n",
		rep.Services, rep.Packages, rep.Portfolio, rep.Users)
	for _, s := range rep.Skipped {
		cmd.Printf("  skipped %s\n", s)
	}
	return nil
}
