package main

import (
	"context"
	"errors"

	"shiningstar/internal/app/role"
	"shiningstar/internal/app/seed"

	"github.com/spf13/cobra"
)

var adminUser seed.UserRecord

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an admin panel user",
	RunE:  runAdmin,
}

func init() {
	adminCmd.Flags().StringVar(&adminUser.Username, "username", "admin", "login name")
	adminCmd.Flags().StringVar(&adminUser.Email, "email", "", "email address")
	adminCmd.Flags().StringVar(&adminUser.Password, "password", "", "password (stored as a bcrypt hash)")
	adminCmd.Flags().StringVar(&adminUser.Name, "name", "", "display name")
	rootCmd.AddCommand(adminCmd)
}

func runAdmin(cmd *cobra.Command, _ []string) error {
	if adminUser.Email == "" || adminUser.Password == "" {
		return errors.New("--email and --password are required")
	}
	adminUser.Role = role.Admin

	user, err := seed.NewUser(adminUser)
	if err != nil {
		return err
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	created, err := store.CreateUser(context.Background(), user)
	if err != nil {
		return err
	}
	cmd.Printf("Admin user %s created with id %d\n", created.Username, created.ID)
	return nil
}
