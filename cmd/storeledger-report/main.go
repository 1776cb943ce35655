package main

import (
	"context"
	"os"

	"storeledger/internal/cli"
	applog "storeledger/internal/log"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentReport)
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	totals, err := repo.TeamTotals(context.Background())
	if err != nil {
		logger.Error("Failed to read team totals", applog.FieldError, err)
		os.Exit(1)
	}

	cli.RenderLeaderboard(os.Stdout, totals)
}
