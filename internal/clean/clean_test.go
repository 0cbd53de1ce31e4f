package clean

import (
	"errors"
	"testing"
	"time"

	"github.com/gyeh/clinstats/internal/csvread"
)

func patientsTable(rows ...[]string) *csvread.Table {
	return csvread.FromRecords("patients",
		[]string{"Id", "BIRTHDATE", "GENDER", "CITY", "STATE"}, rows)
}

func encountersTable(rows ...[]string) *csvread.Table {
	return csvread.FromRecords("encounters",
		[]string{"Id", "PATIENT", "START", "STOP", "REASONDESCRIPTION"}, rows)
}

func medicationsTable(rows ...[]string) *csvread.Table {
	return csvread.FromRecords("medications",
		[]string{"ENCOUNTER", "PATIENT", "DESCRIPTION"}, rows)
}

func TestPatients_Basic(t *testing.T) {
	got, counts, err := Patients(patientsTable(
		[]string{"P1", "1990-01-01", "F", "Boston", "MA"},
		[]string{"P2", "1985-06-15", "M", "", ""},
	))
	if err != nil {
		t.Fatalf("Patients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kept %d rows, want 2", len(got))
	}
	if counts.RowsRead != 2 || counts.RowsKept != 2 || counts.RowsDropped != 0 {
		t.Errorf("counts = %+v", counts)
	}
	p := got[0]
	if p.PatientID != "P1" {
		t.Errorf("PatientID = %q", p.PatientID)
	}
	want := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.BirthDate.Equal(want) {
		t.Errorf("BirthDate = %v, want %v", p.BirthDate, want)
	}
	if p.Gender == nil || *p.Gender != "F" {
		t.Errorf("Gender = %v, want F", p.Gender)
	}
	if got[1].City != nil {
		t.Errorf("empty city should be null, got %v", got[1].City)
	}
}

func TestPatients_DropPolicy(t *testing.T) {
	got, counts, err := Patients(patientsTable(
		[]string{"P1", "1990-01-01", "F", "", ""},
		[]string{"", "1991-01-01", "F", "", ""},        // missing id
		[]string{"P2", "not-a-date", "M", "", ""},      // bad birth date
		[]string{"P1", "1992-02-02", "M", "", ""},      // duplicate id
		[]string{"  P3 ", "06/15/1985", "M", "", ""},   // trimmed id, alt date format
	))
	if err != nil {
		t.Fatalf("Patients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kept %d rows, want 2: %+v", len(got), got)
	}
	if got[1].PatientID != "P3" {
		t.Errorf("second kept row = %q, want P3", got[1].PatientID)
	}
	if counts.RowsDropped != 3 {
		t.Errorf("RowsDropped = %d, want 3", counts.RowsDropped)
	}
	// Duplicate keeps the first occurrence.
	if !got[0].BirthDate.Equal(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("duplicate id should keep first occurrence, got %v", got[0].BirthDate)
	}
}

func TestPatients_MissingColumn(t *testing.T) {
	tbl := csvread.FromRecords("patients", []string{"Id", "GENDER"}, nil)
	_, _, err := Patients(tbl)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Table != "patients" || se.Column != "birth_date" {
		t.Errorf("SchemaError = %+v", se)
	}
}

func TestEncounters_Basic(t *testing.T) {
	got, _, err := Encounters(encountersTable(
		[]string{"E1", "P1", "2020-01-02T00:00:00Z", "2020-01-02T01:00:00Z", "checkup"},
		[]string{"E2", "P1", "2020-03-04T10:00:00Z", "2020-03-04T10:30:00Z", ""},
	))
	if err != nil {
		t.Fatalf("Encounters: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kept %d rows, want 2", len(got))
	}
	e := got[0]
	if e.EncounterID != "E1" || e.PatientID != "P1" {
		t.Errorf("keys = %q/%q", e.EncounterID, e.PatientID)
	}
	if e.Reason == nil || *e.Reason != "checkup" {
		t.Errorf("Reason = %v", e.Reason)
	}
	if got[1].Reason != nil {
		t.Errorf("empty reason should be null, got %v", got[1].Reason)
	}
	for _, enc := range got {
		if enc.StartTime.After(enc.StopTime) {
			t.Errorf("encounter %s: start after stop", enc.EncounterID)
		}
	}
}

func TestEncounters_DropPolicy(t *testing.T) {
	_, counts, err := Encounters(encountersTable(
		[]string{"E1", "P1", "2020-01-01T00:00:00Z", "2020-01-01T01:00:00Z", ""},
		[]string{"", "P1", "2020-01-01T00:00:00Z", "2020-01-01T01:00:00Z", ""},   // no id
		[]string{"E2", "", "2020-01-01T00:00:00Z", "2020-01-01T01:00:00Z", ""},   // no patient
		[]string{"E3", "P1", "garbage", "2020-01-01T01:00:00Z", ""},              // bad start
		[]string{"E4", "P1", "2020-01-01T02:00:00Z", "2020-01-01T01:00:00Z", ""}, // start > stop
		[]string{"E1", "P1", "2020-02-01T00:00:00Z", "2020-02-01T01:00:00Z", ""}, // duplicate
	))
	if err != nil {
		t.Fatalf("Encounters: %v", err)
	}
	if counts.RowsKept != 1 || counts.RowsDropped != 5 {
		t.Errorf("counts = %+v, want 1 kept / 5 dropped", counts)
	}
}

func TestEncounters_MissingColumn(t *testing.T) {
	tbl := csvread.FromRecords("encounters", []string{"Id", "PATIENT", "START"}, nil)
	_, _, err := Encounters(tbl)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != "stop_time" {
		t.Errorf("missing column = %q, want stop_time", se.Column)
	}
}

func TestMedications_Basic(t *testing.T) {
	got, counts, err := Medications(medicationsTable(
		[]string{"E1", "P1", "Acetaminophen 325 MG"},
		[]string{"E1", "P1", "Lisinopril 10 MG"},
		[]string{"", "P1", "orphan"},  // no encounter: cannot be attributed
		[]string{"E2", "", "orphan"},  // no patient
	))
	if err != nil {
		t.Fatalf("Medications: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kept %d rows, want 2", len(got))
	}
	if counts.RowsDropped != 2 {
		t.Errorf("RowsDropped = %d, want 2", counts.RowsDropped)
	}
	if got[0].MedicationID != nil {
		t.Errorf("absent id column should yield null ids, got %v", got[0].MedicationID)
	}
	if got[0].Description == nil || *got[0].Description != "Acetaminophen 325 MG" {
		t.Errorf("Description = %v", got[0].Description)
	}
}

func TestMedications_DuplicateIDs(t *testing.T) {
	tbl := csvread.FromRecords("medications",
		[]string{"Id", "ENCOUNTER", "PATIENT", "DESCRIPTION"},
		[][]string{
			{"M1", "E1", "P1", "a"},
			{"M1", "E1", "P1", "a again"},
			{"", "E1", "P1", "no id is fine"},
			{"", "E1", "P1", "twice over"},
		})
	got, _, err := Medications(tbl)
	if err != nil {
		t.Fatalf("Medications: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("kept %d rows, want 3 (duplicate M1 dropped, null ids kept)", len(got))
	}
}

func TestMedications_MissingColumn(t *testing.T) {
	tbl := csvread.FromRecords("medications", []string{"PATIENT"}, nil)
	_, _, err := Medications(tbl)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != "encounter_id" {
		t.Errorf("missing column = %q, want encounter_id", se.Column)
	}
}
