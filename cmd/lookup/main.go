package main

import (
	"context"
	"log"
	"os"

	"github.com/xtrajank/groceries/config"
	"github.com/xtrajank/groceries/internal/catalog"
	"github.com/xtrajank/groceries/internal/lookup"
	"github.com/xtrajank/groceries/internal/util"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.App.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	ctx := context.Background()

	c := catalog.New()
	if _, err := c.LoadCustomers(ctx, cfg.Files.Customers); err != nil {
		logger.Error("Customers not loaded", zap.Error(err))
	}
	if _, err := c.LoadItems(ctx, cfg.Files.Items); err != nil {
		logger.Error("Items not loaded", zap.Error(err))
	}

	if _, err := lookup.NewSession(c, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Error("Lookup aborted", zap.Error(err))
	}
}
