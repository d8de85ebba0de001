package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"weatherdeck.app/pkg/logger"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found or error loading it")
	}

	logger.InstallDefault(os.Getenv("LOG_LEVEL"))

	if err := RootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
