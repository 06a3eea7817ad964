package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bookshelf/internal/buildinfo"
	"github.com/dmitrijs2005/bookshelf/internal/client/cli"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error(ctx, "client stopped", "error", err)
		os.Exit(1)
	}
}
