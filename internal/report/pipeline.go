// Package report orchestrates the full pipeline: load → clean → enrich
// → aggregate → write. Stages run strictly in sequence; each consumes
// the previous stage's complete output and never mutates its input.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/clinstats/internal/aggregate"
	"github.com/gyeh/clinstats/internal/clean"
	"github.com/gyeh/clinstats/internal/config"
	"github.com/gyeh/clinstats/internal/csvread"
	"github.com/gyeh/clinstats/internal/enrich"
	"github.com/gyeh/clinstats/internal/model"
	"github.com/gyeh/clinstats/internal/output"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Outputs bundles every table the pipeline produces, for callers that
// persist them beyond the file outputs (the DB loader, tests).
type Outputs struct {
	Patients    []model.Patient
	Encounters  []model.Encounter
	Medications []model.Medication
	Enriched    []model.EnrichedEncounter
	KPIs        *aggregate.Report
}

// Run executes the full pipeline. When cfg.OutDir is set the cleaned
// tables, the enriched view, and the KPI files are written there.
func Run(log zerolog.Logger, cfg *config.Config) (*model.RunSummary, *Outputs, error) {
	totalStart := time.Now()
	runID := uuid.New()

	summary := &model.RunSummary{
		RunID:           runID.String(),
		PatientsFile:    cfg.PatientsFile,
		EncountersFile:  cfg.EncountersFile,
		MedicationsFile: cfg.MedicationsFile,
	}

	// Phase 1: Load
	log.Info().
		Str("run_id", summary.RunID).
		Str("patients", cfg.PatientsFile).
		Str("encounters", cfg.EncountersFile).
		Str("medications", cfg.MedicationsFile).
		Msg("loading raw tables")
	loadStart := time.Now()

	rawPatients, err := csvread.Open(cfg.PatientsFile, "patients")
	if err != nil {
		return nil, nil, &PipelineError{Phase: "load", Err: err}
	}
	rawEncounters, err := csvread.Open(cfg.EncountersFile, "encounters")
	if err != nil {
		return nil, nil, &PipelineError{Phase: "load", Err: err}
	}
	rawMedications, err := csvread.Open(cfg.MedicationsFile, "medications")
	if err != nil {
		return nil, nil, &PipelineError{Phase: "load", Err: err}
	}
	summary.DurationLoad = time.Since(loadStart)

	// Phase 2: Clean (each table independently)
	log.Info().Msg("cleaning")
	cleanStart := time.Now()

	out := &Outputs{}
	out.Patients, summary.Patients, err = clean.Patients(rawPatients)
	if err != nil {
		return nil, nil, &PipelineError{Phase: "clean", Err: err}
	}
	out.Encounters, summary.Encounters, err = clean.Encounters(rawEncounters)
	if err != nil {
		return nil, nil, &PipelineError{Phase: "clean", Err: err}
	}
	out.Medications, summary.Medications, err = clean.Medications(rawMedications)
	if err != nil {
		return nil, nil, &PipelineError{Phase: "clean", Err: err}
	}
	summary.DurationClean = time.Since(cleanStart)

	log.Info().
		Int64("patients_kept", summary.Patients.RowsKept).
		Int64("patients_dropped", summary.Patients.RowsDropped).
		Int64("encounters_kept", summary.Encounters.RowsKept).
		Int64("encounters_dropped", summary.Encounters.RowsDropped).
		Int64("medications_kept", summary.Medications.RowsKept).
		Int64("medications_dropped", summary.Medications.RowsDropped).
		Str("duration", summary.DurationClean.String()).
		Msg("cleaning complete")

	// Phase 3: Enrich
	log.Info().Msg("enriching")
	enrichStart := time.Now()

	enriched, enrichRes, err := enrich.Encounters(out.Patients, out.Encounters, out.Medications)
	if err != nil {
		return nil, nil, &PipelineError{Phase: "enrich", Err: err}
	}
	out.Enriched = enriched
	summary.EnrichedRows = enrichRes.EncountersKept
	summary.EncountersDropped = enrichRes.EncountersDropped
	summary.DurationEnrich = time.Since(enrichStart)

	log.Info().
		Int64("rows", enrichRes.EncountersKept).
		Int64("unresolved_patient", enrichRes.EncountersDropped).
		Str("duration", summary.DurationEnrich.String()).
		Msg("enrichment complete")

	// Phase 4: Aggregate
	log.Info().Msg("aggregating")
	aggStart := time.Now()

	out.KPIs = aggregate.Compute(out.Enriched, cfg.AggregateOptions())
	summary.OutOfRangeAges = out.KPIs.OutOfRangeAges
	summary.DurationAggregate = time.Since(aggStart)

	// Phase 5: Write outputs
	if cfg.OutDir != "" {
		log.Info().Str("dir", cfg.OutDir).Msg("writing outputs")
		writeStart := time.Now()
		if err := writeAll(cfg, out); err != nil {
			return nil, nil, &PipelineError{Phase: "write", Err: err}
		}
		summary.DurationWrite = time.Since(writeStart)
	}

	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Str("run_id", summary.RunID).
		Int64("enriched_rows", summary.EnrichedRows).
		Float64("mean_encounters_per_patient", out.KPIs.MeanEncountersPerPatient).
		Int64("out_of_range_ages", summary.OutOfRangeAges).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("pipeline complete")

	return summary, out, nil
}

// writeAll persists every produced table under cfg.OutDir.
func writeAll(cfg *config.Config, out *Outputs) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := output.WritePatients(cfg.OutDir, out.Patients); err != nil {
		return err
	}
	if err := output.WriteEncounters(cfg.OutDir, out.Encounters); err != nil {
		return err
	}
	if err := output.WriteMedications(cfg.OutDir, out.Medications); err != nil {
		return err
	}
	if err := output.WriteEnrichedCSV(cfg.OutDir, out.Enriched); err != nil {
		return err
	}
	if err := output.WriteEnrichedParquet(cfg.OutDir, out.Enriched); err != nil {
		return err
	}
	metric := aggregate.AgeMetric(cfg.AgeBucketMetric)
	if metric == "" {
		metric = aggregate.MetricTotal
	}
	return output.WriteKPIs(cfg.OutDir, out.KPIs, metric)
}
