package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/clinstats/internal/clean"
	"github.com/gyeh/clinstats/internal/exitcode"
	"github.com/gyeh/clinstats/internal/logging"
	"github.com/gyeh/clinstats/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the pipeline and write cleaned tables, enriched view, and KPIs to a directory",
	RunE:  runReport,
}

func init() {
	addInputFlags(reportCmd)
	reportCmd.Flags().StringVar(&cfg.OutDir, "out", "", "Output directory (required)")
	_ = reportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, out, err := report.Run(log, &cfg)
	if err != nil {
		exitPipelineError(log, err)
	}

	fmt.Printf("Report complete: %d enriched rows, KPI1=%.3f (%.1fs)\n",
		summary.EnrichedRows, out.KPIs.MeanEncountersPerPatient,
		summary.DurationTotal.Seconds())
	return nil
}

// exitPipelineError logs a pipeline failure and exits with a code
// reflecting the failed phase. A schema mismatch is a validation
// problem with the input file, not a transform bug.
func exitPipelineError(log zerolog.Logger, err error) {
	var se *clean.SchemaError
	if errors.As(err, &se) {
		log.Error().
			Str("table", se.Table).
			Str("column", se.Column).
			Msg("raw input does not match the expected schema")
		os.Exit(exitcode.ValidationError)
	}

	var pe *report.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("pipeline failed")
		switch pe.Phase {
		case "load":
			os.Exit(exitcode.ValidationError)
		case "write":
			os.Exit(exitcode.CopyError)
		default:
			os.Exit(exitcode.TransformError)
		}
	}

	log.Error().Err(err).Msg("pipeline failed")
	os.Exit(exitcode.TransformError)
}
