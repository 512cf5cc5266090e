// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/elastic-tutorial/internal/dataset"
	"github.com/pdiddy/elastic-tutorial/internal/export"
	"github.com/pdiddy/elastic-tutorial/internal/frame"
	"github.com/pdiddy/elastic-tutorial/internal/logging"
	"github.com/pdiddy/elastic-tutorial/internal/metrics"
	"github.com/pdiddy/elastic-tutorial/internal/tutorial"
	"github.com/pdiddy/elastic-tutorial/pkg/types"
)

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the tutorial table and print or export it",
		Long: `Load fetches the elastic tensor dataset and prints the tutorial table:
material_id as the row key, formula, space_group, shear_modulus and
bulk_modulus rounded to one decimal.

Use --format to choose table, json, yaml or csv output, --sqlite to also
write the table into a SQLite database, and --metrics-file to record the
run for the node-exporter textfile collector.`,
		RunE: runLoad,
	}
	addDatasetFlags(cmd)
	cmd.Flags().String("format", "", "output format: table, json, yaml, or csv (default table)")
	cmd.Flags().String("sqlite", "", "also write the table to this SQLite database")
	cmd.Flags().String("sqlite-table", "", "SQLite table name (default elastic_tutorial)")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
	return cmd
}

var exportFlags = map[string]string{
	"format":       "export.format",
	"sqlite":       "export.sqlite_path",
	"sqlite-table": "export.sqlite_table",
	"metrics-file": "metrics_file",
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, datasetFlags); err != nil {
		return err
	}
	if err := bindFlags(cmd, exportFlags); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	f, err := loadTutorial(ctx, cfg)
	if err != nil {
		return err
	}

	if err := export.Write(cmd.OutOrStdout(), f, cfg.Export.Format); err != nil {
		return err
	}

	if cfg.Export.SQLitePath != "" {
		if err := export.WriteSQLite(ctx, cfg.Export.SQLitePath, cfg.Export.SQLiteTable, f); err != nil {
			return fmt.Errorf("sqlite export: %w", err)
		}
		logger.Info("wrote sqlite export",
			zap.String("path", cfg.Export.SQLitePath),
			zap.String("table", cfg.Export.SQLiteTable),
			zap.Int("rows", f.NRows()),
		)
	}
	return nil
}

// loadTutorial builds the configured source, runs the tutorial loader and
// records the outcome in the metrics textfile when one is configured.
func loadTutorial(ctx context.Context, cfg types.Config) (*frame.Frame, error) {
	src, err := dataset.FromConfig(ctx, cfg.Dataset, loadedSecrets)
	if err != nil {
		return nil, err
	}

	rec := metrics.NewRecorder()
	start := time.Now()
	f, err := tutorial.LoadFrom(ctx, src, tutorial.WithLogger(logging.Component(logger, "tutorial")))
	elapsed := time.Since(start)

	if err != nil {
		rec.ObserveFailure(src.Name(), elapsed)
	} else {
		rec.ObserveSuccess(src.Name(), f.NRows(), len(f.Columns()), elapsed, time.Now())
		logger.Info("loaded tutorial data",
			zap.String("source", src.Name()),
			zap.Int("rows", f.NRows()),
			zap.Duration("elapsed", elapsed),
		)
	}

	if cfg.MetricsFile != "" {
		if werr := rec.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Warn("metrics textfile write failed", zap.String("path", cfg.MetricsFile), zap.Error(werr))
		}
	}
	return f, err
}
