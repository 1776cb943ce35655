package main

import (
	"context"
	"os"

	"storeledger/internal/backend"
	"storeledger/internal/cli"
	applog "storeledger/internal/log"
	"storeledger/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)
	catalog := cli.LoadCatalog(logger, cfg)

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewDefaultFactory(logger)
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", applog.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", applog.FieldError, err)
		}
	}()

	service := services.NewCheckoutService(result.Ledger, result.Publisher)

	menu := cli.NewMenu(catalog, result.Ledger, service, logger.WithComponent(applog.ComponentMenu), os.Stdin, os.Stdout)
	if err := menu.Run(ctx); err != nil {
		logger.Error("Menu loop failed", applog.FieldError, err)
		os.Exit(1)
	}
}
