package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/leilabk/shelfctl/internal/api"
	"github.com/leilabk/shelfctl/internal/session"
	"github.com/leilabk/shelfctl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	sess := session.New(session.NewFileStore(config.TokenPath()))
	httpClient := &http.Client{Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second}
	client := api.NewClient(config.API.BaseURL, httpClient, sess)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Client:  client,
		Session: sess,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "shelfctl",
		Usage:    "Manage a library catalog of books, DVDs and audiobooks",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
