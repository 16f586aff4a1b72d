package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/you/elearnauth/internal/app"
	"github.com/you/elearnauth/internal/config"
	"github.com/you/elearnauth/internal/logging"
)

func main() {
	path := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo).With("service", "elearnauth")
	if err := app.Run(ctx, cfg, logger); err != nil {
		log.Fatalf("app: %v", err)
	}
}
