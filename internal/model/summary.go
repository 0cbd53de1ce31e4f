package model

import "time"

// TableCounts captures the row accounting for one cleaned table.
// Dropped rows are a data-quality signal, not an error.
type TableCounts struct {
	RowsRead    int64
	RowsKept    int64
	RowsDropped int64
}

// RunSummary captures metrics from a single pipeline run.
type RunSummary struct {
	RunID           string
	PatientsFile    string
	EncountersFile  string
	MedicationsFile string

	Patients    TableCounts
	Encounters  TableCounts
	Medications TableCounts

	EnrichedRows      int64
	EncountersDropped int64 // unresolved patient during enrichment
	OutOfRangeAges    int64 // excluded from the age-bucket KPI

	DurationLoad      time.Duration
	DurationClean     time.Duration
	DurationEnrich    time.Duration
	DurationAggregate time.Duration
	DurationWrite     time.Duration
	DurationTotal     time.Duration
}
