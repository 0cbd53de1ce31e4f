// Package clean normalizes raw tabular exports into the canonical
// patient, encounter, and medication tables. Each table is cleaned
// independently; cross-table resolution belongs to the enrich package.
//
// A row is dropped when a join-critical field (the table's own primary
// key, patient_id, encounter_id) is missing, duplicated, or fails type
// coercion. Non-key fields keep their nulls. Drops are counted, never
// surfaced as errors; only a missing required column aborts cleaning.
package clean

import (
	"fmt"

	"github.com/gyeh/clinstats/internal/csvread"
	"github.com/gyeh/clinstats/internal/model"
)

// SchemaError reports a required column absent from a raw table. It is
// the only error cleaning can return: garbage cell values drop rows,
// a missing column means the input is the wrong shape entirely.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: required column %q not found", e.Table, e.Column)
}

// column describes one canonical field and the normalized header keys
// that may carry it in raw input (Synthea-style exports alongside plain
// snake_case headers).
type column struct {
	name    string // canonical field name, used in SchemaError
	aliases []string
}

// resolve maps each required column to its index in the raw table,
// failing with a SchemaError on the first absent column.
func resolve(t *csvread.Table, required []column) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for _, c := range required {
		i, ok := t.Column(c.aliases...)
		if !ok {
			return nil, &SchemaError{Table: t.Name, Column: c.name}
		}
		idx[c.name] = i
	}
	return idx, nil
}

// resolveOptional returns the column index or -1 when absent. Absent
// optional columns read as all-null.
func resolveOptional(t *csvread.Table, c column) int {
	if i, ok := t.Column(c.aliases...); ok {
		return i
	}
	return -1
}

// counts builds a model.TableCounts from read/kept totals.
func counts(read, kept int) model.TableCounts {
	return model.TableCounts{
		RowsRead:    int64(read),
		RowsKept:    int64(kept),
		RowsDropped: int64(read - kept),
	}
}
