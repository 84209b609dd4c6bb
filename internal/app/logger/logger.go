package logger

import (
	"os"

	"shiningstar/internal/app/config"

	log "github.com/sirupsen/logrus"
)

// Setup настраивает глобальный логгер logrus
func Setup(cfg config.LogConfig) {
	log.SetOutput(os.Stdout)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
