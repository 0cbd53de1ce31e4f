// Package output persists the cleaned tables, the enriched view, and
// the KPI results. Writers are deterministic: identical inputs produce
// byte-identical files.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gyeh/clinstats/internal/aggregate"
	"github.com/gyeh/clinstats/internal/model"
)

const (
	timestampLayout = time.RFC3339
	dateLayout      = "2006-01-02"
)

// writeCSV writes a header plus rows to dir/name.
func writeCSV(dir, name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePatients writes the cleaned patient table as patients.csv.
func WritePatients(dir string, patients []model.Patient) error {
	rows := make([][]string, len(patients))
	for i := range patients {
		p := &patients[i]
		rows[i] = []string{
			p.PatientID,
			p.BirthDate.Format(dateLayout),
			derefStr(p.Gender),
			derefStr(p.City),
			derefStr(p.State),
		}
	}
	return writeCSV(dir, "patients.csv",
		[]string{"patient_id", "birth_date", "gender", "city", "state"}, rows)
}

// WriteEncounters writes the cleaned encounter table as encounters.csv.
func WriteEncounters(dir string, encounters []model.Encounter) error {
	rows := make([][]string, len(encounters))
	for i := range encounters {
		e := &encounters[i]
		rows[i] = []string{
			e.EncounterID,
			e.PatientID,
			e.StartTime.Format(timestampLayout),
			e.StopTime.Format(timestampLayout),
			derefStr(e.Reason),
		}
	}
	return writeCSV(dir, "encounters.csv",
		[]string{"encounter_id", "patient_id", "start_time", "stop_time", "reason"}, rows)
}

// WriteMedications writes the cleaned medication table as medications.csv.
func WriteMedications(dir string, medications []model.Medication) error {
	rows := make([][]string, len(medications))
	for i := range medications {
		m := &medications[i]
		rows[i] = []string{
			derefStr(m.MedicationID),
			m.EncounterID,
			m.PatientID,
			derefStr(m.Description),
		}
	}
	return writeCSV(dir, "medications.csv",
		[]string{"medication_id", "encounter_id", "patient_id", "description"}, rows)
}

// WriteEnrichedCSV writes the enriched view as enriched_encounters.csv.
func WriteEnrichedCSV(dir string, enriched []model.EnrichedEncounter) error {
	rows := make([][]string, len(enriched))
	for i := range enriched {
		e := &enriched[i]
		rows[i] = []string{
			e.EncounterID,
			e.PatientID,
			e.StartTime.Format(timestampLayout),
			e.StopTime.Format(timestampLayout),
			derefStr(e.Reason),
			derefStr(e.Gender),
			e.BirthDate.Format(dateLayout),
			strconv.Itoa(e.AgeAtEncounter),
			strconv.Itoa(e.MedicationCount),
		}
	}
	return writeCSV(dir, "enriched_encounters.csv", []string{
		"encounter_id", "patient_id", "start_time", "stop_time", "reason",
		"gender", "birth_date", "age_at_encounter", "medication_count",
	}, rows)
}

// WriteKPIs writes the three KPI results: kpi_summary.csv holds the
// scalar indicators, kpi_top_reasons.csv the ranking, and
// kpi_age_buckets.csv the per-bucket aggregates.
func WriteKPIs(dir string, report *aggregate.Report, metric aggregate.AgeMetric) error {
	summary := [][]string{
		{"mean_encounters_per_patient", formatFloat(report.MeanEncountersPerPatient)},
		{"out_of_range_ages", strconv.FormatInt(report.OutOfRangeAges, 10)},
	}
	if err := writeCSV(dir, "kpi_summary.csv", []string{"metric", "value"}, summary); err != nil {
		return err
	}

	reasons := make([][]string, len(report.TopReasons))
	for i, rc := range report.TopReasons {
		reasons[i] = []string{
			strconv.Itoa(i + 1),
			rc.Reason,
			strconv.FormatInt(rc.Count, 10),
		}
	}
	if err := writeCSV(dir, "kpi_top_reasons.csv",
		[]string{"rank", "reason", "encounter_count"}, reasons); err != nil {
		return err
	}

	buckets := make([][]string, len(report.MedicationsByAge))
	for i, bv := range report.MedicationsByAge {
		buckets[i] = []string{bv.Bucket, string(metric), formatFloat(bv.Value)}
	}
	return writeCSV(dir, "kpi_age_buckets.csv",
		[]string{"bucket", "metric", "value"}, buckets)
}
