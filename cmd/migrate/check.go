package main

import (
	"context"

	"shiningstar/internal/app/repository"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print the catalog held by the configured store",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := context.Background()

	services, err := store.ListServices(ctx, repository.ServiceFilter{})
	if err != nil {
		return err
	}
	cmd.Println("Services in store:")
	for _, s := range services {
		imageURL := "NULL"
		if s.ImageURL != nil {
			imageURL = *s.ImageURL
		}
		cmd.Printf("ID: %s, Name: %s, Type: %s, Price: %.2f, Available: %t, ImageURL: %s\n",
			s.ID, s.Name.En(), s.CalculationType, s.Price, s.Available, imageURL)
	}

	packages, err := store.ListPackages(ctx)
	if err != nil {
		return err
	}
	cmd.Println("Packages in store:")
	for _, p := range packages {
		cmd.Printf("ID: %s, Name: %s, Services: %v, Price: %.2f, Discount: %.0f%%\n",
			p.ID, p.Name.En(), p.Services, p.Price, p.Discount)
	}
	return nil
}
