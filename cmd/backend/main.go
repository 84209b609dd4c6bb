package main

import (
	"shiningstar/internal/api"

	_ "shiningstar/docs"

	"github.com/sirupsen/logrus"
)

// @title Shining Star Cleaning Services API
// @version 1.0
// @description Catalog, quotes, booking requests and admin panel of a cleaning business.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	logrus.Info("App start")
	if err := api.StartServer(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("App terminated")
}
