package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/clinstats/internal/exitcode"
	"github.com/gyeh/clinstats/internal/logging"
	"github.com/gyeh/clinstats/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	addInputFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	// The whole pipeline is an in-memory transformation, so a dry run is
	// just a run with no output directory.
	cfg.OutDir = ""
	summary, out, err := report.Run(log, &cfg)
	if err != nil {
		exitPipelineError(log, err)
	}

	fmt.Printf("patients:    %6d read, %6d kept, %6d dropped\n",
		summary.Patients.RowsRead, summary.Patients.RowsKept, summary.Patients.RowsDropped)
	fmt.Printf("encounters:  %6d read, %6d kept, %6d dropped\n",
		summary.Encounters.RowsRead, summary.Encounters.RowsKept, summary.Encounters.RowsDropped)
	fmt.Printf("medications: %6d read, %6d kept, %6d dropped\n",
		summary.Medications.RowsRead, summary.Medications.RowsKept, summary.Medications.RowsDropped)
	fmt.Printf("enriched:    %6d rows (%d encounters with unresolved patient)\n",
		summary.EnrichedRows, summary.EncountersDropped)
	fmt.Printf("KPI1 mean encounters per patient: %.3f\n", out.KPIs.MeanEncountersPerPatient)
	for _, rc := range out.KPIs.TopReasons {
		fmt.Printf("KPI2 reason %-40q %d\n", rc.Reason, rc.Count)
	}
	for _, bv := range out.KPIs.MedicationsByAge {
		fmt.Printf("KPI3 bucket %-6s %.1f\n", bv.Bucket, bv.Value)
	}
	if out.KPIs.OutOfRangeAges > 0 {
		fmt.Printf("KPI3 excluded %d encounters with out-of-range age\n", out.KPIs.OutOfRangeAges)
	}
	return nil
}
