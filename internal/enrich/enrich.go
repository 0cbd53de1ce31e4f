// Package enrich joins the three cleaned tables into the per-encounter
// enriched view and derives age-at-encounter and medication counts.
package enrich

import (
	"fmt"

	"github.com/gyeh/clinstats/internal/model"
)

// Result holds row accounting from the enrichment join.
type Result struct {
	EncountersIn      int64
	EncountersKept    int64
	EncountersDropped int64 // no matching patient
}

// Encounters builds the enriched view: one output row per encounter that
// resolves to a patient. Encounters whose patient is absent from the
// cleaned patient table are dropped, since age-at-encounter is undefined
// without a birth date. Medications are aggregated to a count before the
// join, so the medication side never fans out; encounters with no
// medications get a count of zero.
//
// Empty keys mean the cleaner contract was violated upstream, and fail
// the whole enrichment rather than producing rows with null keys.
func Encounters(patients []model.Patient, encounters []model.Encounter, medications []model.Medication) ([]model.EnrichedEncounter, *Result, error) {
	byPatient := make(map[string]*model.Patient, len(patients))
	for i := range patients {
		if patients[i].PatientID == "" {
			return nil, nil, fmt.Errorf("cleaned patient row %d has empty patient_id", i)
		}
		byPatient[patients[i].PatientID] = &patients[i]
	}

	medCount := make(map[string]int, len(encounters))
	for i := range medications {
		if medications[i].EncounterID == "" {
			return nil, nil, fmt.Errorf("cleaned medication row %d has empty encounter_id", i)
		}
		medCount[medications[i].EncounterID]++
	}

	res := &Result{EncountersIn: int64(len(encounters))}
	out := make([]model.EnrichedEncounter, 0, len(encounters))

	for i := range encounters {
		e := &encounters[i]
		if e.EncounterID == "" || e.PatientID == "" {
			return nil, nil, fmt.Errorf("cleaned encounter row %d has empty key", i)
		}
		p, ok := byPatient[e.PatientID]
		if !ok {
			res.EncountersDropped++
			continue
		}
		out = append(out, model.EnrichedEncounter{
			EncounterID:     e.EncounterID,
			PatientID:       e.PatientID,
			StartTime:       e.StartTime,
			StopTime:        e.StopTime,
			Reason:          e.Reason,
			Gender:          p.Gender,
			BirthDate:       p.BirthDate,
			AgeAtEncounter:  AgeAt(p.BirthDate, e.StartTime),
			MedicationCount: medCount[e.EncounterID],
		})
	}

	res.EncountersKept = int64(len(out))
	return out, res, nil
}
