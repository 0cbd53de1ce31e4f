package clean

import (
	"github.com/gyeh/clinstats/internal/csvread"
	"github.com/gyeh/clinstats/internal/model"
	"github.com/gyeh/clinstats/internal/normalize"
)

var medicationRequired = []column{
	{name: "encounter_id", aliases: []string{"encounterid", "encounter"}},
	{name: "patient_id", aliases: []string{"patientid", "patient"}},
}

var (
	medicationID = column{
		name:    "medication_id",
		aliases: []string{"medicationid", "id"},
	}
	medicationDescription = column{
		name:    "description",
		aliases: []string{"description", "medication", "drug"},
	}
)

// Medications cleans a raw medication table. A row without a resolvable
// encounter or patient id is dropped, since it cannot be attributed to a
// clinical event. medication_id is optional but unique when present;
// duplicate non-null ids drop after the first occurrence.
func Medications(t *csvread.Table) ([]model.Medication, model.TableCounts, error) {
	idx, err := resolve(t, medicationRequired)
	if err != nil {
		return nil, model.TableCounts{}, err
	}
	idIdx := resolveOptional(t, medicationID)
	descIdx := resolveOptional(t, medicationDescription)

	out := make([]model.Medication, 0, t.Len())
	seen := make(map[string]bool)

	for i := 0; i < t.Len(); i++ {
		encounterID := normalize.ID(t.Field(i, idx["encounter_id"]))
		patientID := normalize.ID(t.Field(i, idx["patient_id"]))
		if encounterID == "" || patientID == "" {
			continue
		}

		m := model.Medication{
			EncounterID: encounterID,
			PatientID:   patientID,
		}
		if idIdx >= 0 {
			if id := normalize.ID(t.Field(i, idIdx)); id != "" {
				if seen[id] {
					continue
				}
				seen[id] = true
				m.MedicationID = &id
			}
		}
		if descIdx >= 0 {
			m.Description = normalize.FreeText(t.Field(i, descIdx))
		}
		out = append(out, m)
	}

	return out, counts(t.Len(), len(out)), nil
}
