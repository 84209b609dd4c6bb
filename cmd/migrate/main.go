package main

import (
	"os"

	"shiningstar/internal/api"
	"shiningstar/internal/app/config"
	"shiningstar/internal/app/logger"
	"shiningstar/internal/app/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Database and catalog maintenance for the Shining Star backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// openStore загружает конфиг и открывает выбранное хранилище
func openStore() (*config.Config, repository.Store, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg.Log)

	store, err := api.OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}
