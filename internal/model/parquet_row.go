package model

import "time"

// EnrichedParquetRow mirrors the Parquet schema for one enriched
// encounter. Timestamps are RFC 3339 strings matching the CSV output so
// both renditions of the enriched table carry identical values.
type EnrichedParquetRow struct {
	EncounterID     string  `parquet:"encounter_id"`
	PatientID       string  `parquet:"patient_id"`
	StartTime       string  `parquet:"start_time"`
	StopTime        string  `parquet:"stop_time"`
	Reason          *string `parquet:"reason,optional"`
	Gender          *string `parquet:"gender,optional"`
	BirthDate       string  `parquet:"birth_date"`
	AgeAtEncounter  int32   `parquet:"age_at_encounter"`
	MedicationCount int32   `parquet:"medication_count"`
}

// ToParquetRow converts an EnrichedEncounter to its Parquet representation.
func (e *EnrichedEncounter) ToParquetRow() EnrichedParquetRow {
	return EnrichedParquetRow{
		EncounterID:     e.EncounterID,
		PatientID:       e.PatientID,
		StartTime:       e.StartTime.Format(time.RFC3339),
		StopTime:        e.StopTime.Format(time.RFC3339),
		Reason:          e.Reason,
		Gender:          e.Gender,
		BirthDate:       e.BirthDate.Format("2006-01-02"),
		AgeAtEncounter:  int32(e.AgeAtEncounter),
		MedicationCount: int32(e.MedicationCount),
	}
}
