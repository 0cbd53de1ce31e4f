package output_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gyeh/clinstats/internal/aggregate"
	"github.com/gyeh/clinstats/internal/model"
	"github.com/gyeh/clinstats/internal/output"
)

func readCSV(t *testing.T, dir, name string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return rows
}

func strPtr(s string) *string { return &s }

func TestWriteEnrichedCSV(t *testing.T) {
	dir := t.TempDir()
	enriched := []model.EnrichedEncounter{
		{
			EncounterID:     "E1",
			PatientID:       "P1",
			StartTime:       time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
			StopTime:        time.Date(2020, 1, 2, 1, 0, 0, 0, time.UTC),
			Reason:          strPtr("checkup"),
			Gender:          strPtr("F"),
			BirthDate:       time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			AgeAtEncounter:  30,
			MedicationCount: 1,
		},
	}
	if err := output.WriteEnrichedCSV(dir, enriched); err != nil {
		t.Fatalf("WriteEnrichedCSV: %v", err)
	}

	rows := readCSV(t, dir, "enriched_encounters.csv")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	want := []string{
		"E1", "P1", "2020-01-02T00:00:00Z", "2020-01-02T01:00:00Z",
		"checkup", "F", "1990-01-01", "30", "1",
	}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}

func TestWriteKPIs(t *testing.T) {
	dir := t.TempDir()
	rep := &aggregate.Report{
		MeanEncountersPerPatient: 1.5,
		TopReasons: []aggregate.ReasonCount{
			{Reason: "checkup", Count: 3},
			{Reason: "(none)", Count: 1},
		},
		MedicationsByAge: []aggregate.BucketValue{
			{Bucket: "0-18", Value: 0},
			{Bucket: "19-35", Value: 4},
			{Bucket: "36-50", Value: 0},
			{Bucket: "51-65", Value: 0},
			{Bucket: "66+", Value: 0},
		},
		OutOfRangeAges: 2,
	}
	if err := output.WriteKPIs(dir, rep, aggregate.MetricTotal); err != nil {
		t.Fatalf("WriteKPIs: %v", err)
	}

	summary := readCSV(t, dir, "kpi_summary.csv")
	if summary[1][0] != "mean_encounters_per_patient" || summary[1][1] != "1.5" {
		t.Errorf("summary row = %v", summary[1])
	}
	if summary[2][0] != "out_of_range_ages" || summary[2][1] != "2" {
		t.Errorf("out-of-range row = %v", summary[2])
	}

	reasons := readCSV(t, dir, "kpi_top_reasons.csv")
	if len(reasons) != 3 {
		t.Fatalf("got %d reason rows, want header + 2", len(reasons))
	}
	if reasons[1][0] != "1" || reasons[1][1] != "checkup" || reasons[1][2] != "3" {
		t.Errorf("rank 1 = %v", reasons[1])
	}

	buckets := readCSV(t, dir, "kpi_age_buckets.csv")
	if len(buckets) != 6 {
		t.Fatalf("got %d bucket rows, want header + 5", len(buckets))
	}
	if buckets[2][0] != "19-35" || buckets[2][1] != "total" || buckets[2][2] != "4" {
		t.Errorf("bucket row = %v", buckets[2])
	}
}

func TestWriteMedications_NullableFields(t *testing.T) {
	dir := t.TempDir()
	meds := []model.Medication{
		{EncounterID: "E1", PatientID: "P1"},
	}
	if err := output.WriteMedications(dir, meds); err != nil {
		t.Fatalf("WriteMedications: %v", err)
	}
	rows := readCSV(t, dir, "medications.csv")
	if rows[1][0] != "" || rows[1][3] != "" {
		t.Errorf("null fields should serialize empty: %v", rows[1])
	}
}
