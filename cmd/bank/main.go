package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"banking-ledger/internal/config"
	"banking-ledger/internal/logging"
	"banking-ledger/internal/repository"
	"banking-ledger/internal/shell"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout belongs to the console
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore(logger)
	sh := shell.New(cfg, store, logger, shell.Options{Out: os.Stdout, Prompt: "> "})

	fmt.Fprintf(os.Stdout, "%s: type \"help\" for commands\n", cfg.AppName)
	logger.Info("shell started", "interest_rate", cfg.InterestRate, "monthly_fee", cfg.MonthlyFee, "timezone", cfg.Location.String())

	if err := sh.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("shell failed", "error", err)
		os.Exit(1)
	}

	logger.Info("shell exited cleanly")
}
