package clean

import (
	"github.com/gyeh/clinstats/internal/csvread"
	"github.com/gyeh/clinstats/internal/model"
	"github.com/gyeh/clinstats/internal/normalize"
)

var patientRequired = []column{
	{name: "patient_id", aliases: []string{"patientid", "id"}},
	{name: "birth_date", aliases: []string{"birthdate", "dateofbirth", "dob"}},
}

var (
	patientGender = column{name: "gender", aliases: []string{"gender", "sex"}}
	patientCity   = column{name: "city", aliases: []string{"city"}}
	patientState  = column{name: "state", aliases: []string{"state"}}
)

// Patients cleans a raw patient table. Rows with a missing or duplicate
// patient_id, or an unparseable birth_date, are dropped and counted.
// First occurrence wins on duplicate ids so output order follows input
// order deterministically.
func Patients(t *csvread.Table) ([]model.Patient, model.TableCounts, error) {
	idx, err := resolve(t, patientRequired)
	if err != nil {
		return nil, model.TableCounts{}, err
	}
	genderIdx := resolveOptional(t, patientGender)
	cityIdx := resolveOptional(t, patientCity)
	stateIdx := resolveOptional(t, patientState)

	out := make([]model.Patient, 0, t.Len())
	seen := make(map[string]bool, t.Len())

	for i := 0; i < t.Len(); i++ {
		id := normalize.ID(t.Field(i, idx["patient_id"]))
		if id == "" || seen[id] {
			continue
		}
		birth := normalize.ParseDate(t.Field(i, idx["birth_date"]))
		if birth == nil {
			continue
		}
		seen[id] = true

		p := model.Patient{
			PatientID: id,
			BirthDate: *birth,
		}
		if genderIdx >= 0 {
			p.Gender = normalize.FreeText(t.Field(i, genderIdx))
		}
		if cityIdx >= 0 {
			p.City = normalize.FreeText(t.Field(i, cityIdx))
		}
		if stateIdx >= 0 {
			p.State = normalize.FreeText(t.Field(i, stateIdx))
		}
		out = append(out, p)
	}

	return out, counts(t.Len(), len(out)), nil
}
