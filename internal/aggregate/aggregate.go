// Package aggregate computes the reporting KPIs from the enriched
// encounter table. Each KPI is an independent pure reduction with a
// fixed, deterministic output order.
package aggregate

import (
	"sort"

	"github.com/gyeh/clinstats/internal/model"
)

// ReasonNone is the explicit bucket for encounters with no recorded
// reason. Missing reasons are informative and must not vanish from the
// ranking.
const ReasonNone = "(none)"

// ReasonCount is one entry of the top-reasons ranking.
type ReasonCount struct {
	Reason string
	Count  int64
}

// BucketValue is the aggregate for one age bucket.
type BucketValue struct {
	Bucket string
	Value  float64
}

// Report holds all KPI results for one run. Built once, immutable after.
type Report struct {
	MeanEncountersPerPatient float64
	TopReasons               []ReasonCount
	MedicationsByAge         []BucketValue
	OutOfRangeAges           int64 // ages outside [0,100], excluded from MedicationsByAge
}

// Options selects KPI parameters that have a documented default.
type Options struct {
	TopN      int       // entries in the reason ranking, default 5
	AgeMetric AgeMetric // total or mean medications per bucket, default total
}

// Compute runs all three KPIs over the enriched table.
func Compute(rows []model.EnrichedEncounter, opts Options) *Report {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.AgeMetric == "" {
		opts.AgeMetric = MetricTotal
	}

	buckets, outOfRange := MedicationsByAge(rows, opts.AgeMetric)
	return &Report{
		MeanEncountersPerPatient: MeanEncountersPerPatient(rows),
		TopReasons:               TopReasons(rows, opts.TopN),
		MedicationsByAge:         buckets,
		OutOfRangeAges:           outOfRange,
	}
}

// MeanEncountersPerPatient returns rows divided by distinct patients.
// Patients with no surviving encounters have no representation here and
// are excluded from the denominator. Returns 0 for an empty table.
func MeanEncountersPerPatient(rows []model.EnrichedEncounter) float64 {
	if len(rows) == 0 {
		return 0
	}
	patients := make(map[string]struct{}, len(rows))
	for i := range rows {
		patients[rows[i].PatientID] = struct{}{}
	}
	return float64(len(rows)) / float64(len(patients))
}

// TopReasons counts encounters per reason and returns the top n, sorted
// by descending count with lexicographic tie-break. Null reasons count
// under the ReasonNone bucket.
func TopReasons(rows []model.EnrichedEncounter, n int) []ReasonCount {
	byReason := make(map[string]int64)
	for i := range rows {
		reason := ReasonNone
		if rows[i].Reason != nil {
			reason = *rows[i].Reason
		}
		byReason[reason]++
	}

	ranked := make([]ReasonCount, 0, len(byReason))
	for reason, count := range byReason {
		ranked = append(ranked, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Reason < ranked[j].Reason
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
