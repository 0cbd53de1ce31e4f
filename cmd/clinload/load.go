package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/clinstats/internal/aggregate"
	"github.com/gyeh/clinstats/internal/db"
	"github.com/gyeh/clinstats/internal/exitcode"
	"github.com/gyeh/clinstats/internal/logging"
	"github.com/gyeh/clinstats/internal/report"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run the pipeline and bulk-load the enriched view and KPIs into Postgres",
	RunE:  runLoad,
}

func init() {
	addInputFlags(loadCmd)
	f := loadCmd.Flags()
	f.StringVar(&cfg.OutDir, "out", "", "Also write file outputs to this directory")
	f.BoolVar(&cfg.KeepRows, "keep-rows", false, "Keep previously loaded runs instead of trimming to the latest")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, out, err := report.Run(log, &cfg)
	if err != nil {
		exitPipelineError(log, err)
	}

	runID, err := uuid.Parse(summary.RunID)
	if err != nil {
		log.Error().Err(err).Msg("invalid run id")
		os.Exit(exitcode.TransformError)
	}

	res, err := db.LoadRun(ctx, pool, log, runID, summary, out.Enriched, out.KPIs,
		aggregate.AgeMetric(cfg.AgeBucketMetric))
	if err != nil {
		log.Error().Err(err).Msg("serving load failed")
		os.Exit(exitcode.CopyError)
	}

	if !cfg.KeepRows {
		if err := db.DeleteOlderRuns(ctx, pool, log, runID); err != nil {
			log.Warn().Err(err).Msg("older run cleanup failed (non-fatal)")
		}
	}

	fmt.Printf("Load complete: %d enriched rows copied, run %s (%.1fs)\n",
		res.RowsCopied, summary.RunID, summary.DurationTotal.Seconds())
	return nil
}
