package main

import (
	"context"
	"fmt"
	"os"

	"storeledger/internal/cli"
	applog "storeledger/internal/log"
	"storeledger/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentMerge)
	cfg := cli.LoadAndValidateConfig(logger)

	master := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer master.Close()

	merger := storage.NewMerger(master)
	report, err := merger.MergeDir(context.Background(), cfg.SourceDBDir)
	if err != nil {
		logger.Error("Merge failed", applog.FieldError, err, applog.FieldSourceDir, cfg.SourceDBDir)
		os.Exit(1)
	}

	logger.Info("Merge complete",
		applog.FieldSourceDir, cfg.SourceDBDir,
		"source_files", report.SourceFiles,
		"rows_copied", report.RowsCopied,
		"rows_skipped", report.RowsSkipped)
	fmt.Printf("Merged %d rows from %d source files into %s (%d skipped).\n",
		report.RowsCopied, report.SourceFiles, cfg.SQLiteDBPath, report.RowsSkipped)
}
