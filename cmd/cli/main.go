package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/mediacatalog/internal/buildinfo"
	"github.com/dmitrijs2005/mediacatalog/internal/client/cli"
	"github.com/dmitrijs2005/mediacatalog/internal/client/config"
	"github.com/dmitrijs2005/mediacatalog/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "start failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "run failed", "error", err)
		os.Exit(1)
	}

}
