package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/clinstats/internal/config"
	"github.com/gyeh/clinstats/internal/exitcode"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "clinload",
	Short: "Clinical encounter cleaning, enrichment, and KPI pipeline",
	Long:  "Cleans raw patient/encounter/medication exports, builds the enriched per-encounter view, computes reporting KPIs, and optionally bulk-loads the results into Postgres.",
}

var configFile string

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("CLINSTATS_DB_URL"), "Postgres connection string (or set CLINSTATS_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configFile, "config", "", "Optional YAML config file (KPI options)")
}

// addInputFlags registers the three raw-table flags shared by the
// pipeline commands.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.PatientsFile, "patients", "", "Path to raw patients CSV (required)")
	f.StringVar(&cfg.EncountersFile, "encounters", "", "Path to raw encounters CSV (required)")
	f.StringVar(&cfg.MedicationsFile, "medications", "", "Path to raw medications CSV (required)")
	_ = cmd.MarkFlagRequired("patients")
	_ = cmd.MarkFlagRequired("encounters")
	_ = cmd.MarkFlagRequired("medications")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
