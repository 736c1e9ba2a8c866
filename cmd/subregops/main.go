package main

import (
	"log/slog"
	"os"

	"github.com/opslake/subregops/internal/infrastructure/logger"
	"github.com/opslake/subregops/internal/interfaces/cli"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("SUBREGOPS_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}

	logger.Init(&logger.Config{
		Level:     logLevel,
		Format:    os.Getenv("SUBREGOPS_LOG_FORMAT"),
		AddSource: os.Getenv("SUBREGOPS_DEBUG") != "",
	})

	cli.Execute()
}
