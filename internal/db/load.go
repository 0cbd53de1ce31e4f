package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/clinstats/internal/aggregate"
	"github.com/gyeh/clinstats/internal/model"
)

const insertRunSQL = `
INSERT INTO clinical.pipeline_runs (
    run_id, patients_file, encounters_file, medications_file,
    patients_kept, patients_dropped,
    encounters_kept, encounters_dropped,
    medications_kept, medications_dropped,
    enriched_rows, unresolved_patients, out_of_range_ages
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// LoadResult holds metrics from the serving-table load.
type LoadResult struct {
	RowsCopied int64
	Duration   time.Duration
}

// LoadRun registers the run and bulk-loads the enriched rows and KPI
// results into the clinical schema, all in one transaction so a failed
// load leaves no partial run behind.
func LoadRun(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID,
	summary *model.RunSummary, enriched []model.EnrichedEncounter, kpis *aggregate.Report,
	metric aggregate.AgeMetric) (*LoadResult, error) {

	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin load tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertRunSQL,
		runID,
		summary.PatientsFile, summary.EncountersFile, summary.MedicationsFile,
		summary.Patients.RowsKept, summary.Patients.RowsDropped,
		summary.Encounters.RowsKept, summary.Encounters.RowsDropped,
		summary.Medications.RowsKept, summary.Medications.RowsDropped,
		summary.EnrichedRows, summary.EncountersDropped, summary.OutOfRangeAges,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pipeline run: %w", err)
	}

	source := NewEnrichedSource(runID, enriched)
	rowsCopied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"clinical", "enriched_encounters"},
		model.EnrichedColumns(),
		source,
	)
	if err != nil {
		return nil, fmt.Errorf("copy enriched rows: %w", err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO clinical.kpi_scalars (run_id, metric, value) VALUES ($1, $2, $3)",
		runID, "mean_encounters_per_patient", kpis.MeanEncountersPerPatient,
	)
	if err != nil {
		return nil, fmt.Errorf("insert kpi scalar: %w", err)
	}

	for i, rc := range kpis.TopReasons {
		_, err = tx.Exec(ctx,
			"INSERT INTO clinical.kpi_top_reasons (run_id, rank, reason, encounter_count) VALUES ($1, $2, $3, $4)",
			runID, i+1, rc.Reason, rc.Count,
		)
		if err != nil {
			return nil, fmt.Errorf("insert kpi reason rank %d: %w", i+1, err)
		}
	}

	for _, bv := range kpis.MedicationsByAge {
		_, err = tx.Exec(ctx,
			"INSERT INTO clinical.kpi_age_buckets (run_id, bucket, metric, value) VALUES ($1, $2, $3, $4)",
			runID, bv.Bucket, string(metric), bv.Value,
		)
		if err != nil {
			return nil, fmt.Errorf("insert kpi bucket %s: %w", bv.Bucket, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit load tx: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("run_id", runID.String()).
		Int64("rows_copied", rowsCopied).
		Str("duration", dur.String()).
		Msg("serving load complete")

	return &LoadResult{RowsCopied: rowsCopied, Duration: dur}, nil
}

// DeleteOlderRuns removes every run except the one given, trimming the
// serving tables to the latest load. KPI and enriched rows cascade.
func DeleteOlderRuns(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, keep uuid.UUID) error {
	tag, err := pool.Exec(ctx,
		"DELETE FROM clinical.pipeline_runs WHERE run_id <> $1", keep)
	if err != nil {
		return fmt.Errorf("delete older runs: %w", err)
	}
	log.Info().Int64("runs_deleted", tag.RowsAffected()).Msg("older runs removed")
	return nil
}
