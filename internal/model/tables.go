package model

import "time"

// Patient is the canonical cleaned patient record. BirthDate is a UTC
// date (midnight). Demographic fields are passed through from the raw
// export and may be null.
type Patient struct {
	PatientID string
	BirthDate time.Time
	Gender    *string
	City      *string
	State     *string
}

// Encounter is the canonical cleaned encounter record. StartTime and
// StopTime are UTC and satisfy StartTime <= StopTime.
type Encounter struct {
	EncounterID string
	PatientID   string
	StartTime   time.Time
	StopTime    time.Time
	Reason      *string
}

// Medication is the canonical cleaned medication record. MedicationID
// is unique when present; rows without a resolvable EncounterID do not
// survive cleaning.
type Medication struct {
	MedicationID *string
	EncounterID  string
	PatientID    string
	Description  *string
}

// EnrichedEncounter is one row of the enriched view: encounter fields,
// selected patient fields, and the derived metrics. Exactly one row per
// encounter that resolved to a patient. AgeAtEncounter can be negative
// when the source data places an encounter before the patient's birth;
// such rows are retained so downstream consumers can see the anomaly.
type EnrichedEncounter struct {
	EncounterID     string
	PatientID       string
	StartTime       time.Time
	StopTime        time.Time
	Reason          *string
	Gender          *string
	BirthDate       time.Time
	AgeAtEncounter  int
	MedicationCount int
}

// EnrichedColumns returns the ordered column names for COPY into
// clinical.enriched_encounters. The leading run_id is supplied by the
// copy source, not by CopyValues.
func EnrichedColumns() []string {
	return []string{
		"run_id",
		"encounter_id",
		"patient_id",
		"start_time",
		"stop_time",
		"reason",
		"gender",
		"birth_date",
		"age_at_encounter",
		"medication_count",
	}
}

// CopyValues returns the row values in EnrichedColumns order, after the
// run_id slot.
func (e *EnrichedEncounter) CopyValues() []any {
	return []any{
		e.EncounterID,
		e.PatientID,
		e.StartTime,
		e.StopTime,
		e.Reason,
		e.Gender,
		e.BirthDate,
		e.AgeAtEncounter,
		e.MedicationCount,
	}
}
