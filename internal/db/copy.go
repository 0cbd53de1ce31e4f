package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/clinstats/internal/model"
)

// EnrichedSource implements pgx.CopyFromSource over a slice of enriched
// encounters, tagging every row with the pipeline run id.
type EnrichedSource struct {
	runID uuid.UUID
	rows  []model.EnrichedEncounter
	idx   int
}

// NewEnrichedSource creates a CopyFromSource for one run's enriched rows.
func NewEnrichedSource(runID uuid.UUID, rows []model.EnrichedEncounter) *EnrichedSource {
	return &EnrichedSource{runID: runID, rows: rows, idx: -1}
}

// Next advances to the next row.
func (s *EnrichedSource) Next() bool {
	s.idx++
	return s.idx < len(s.rows)
}

// Values returns the current row's values in COPY column order, run_id
// first.
func (s *EnrichedSource) Values() ([]any, error) {
	return append([]any{s.runID}, s.rows[s.idx].CopyValues()...), nil
}

// Err returns any error encountered during iteration.
func (s *EnrichedSource) Err() error {
	return nil
}

// Compile-time check that EnrichedSource satisfies the interface.
var _ pgx.CopyFromSource = (*EnrichedSource)(nil)
