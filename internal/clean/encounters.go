package clean

import (
	"github.com/gyeh/clinstats/internal/csvread"
	"github.com/gyeh/clinstats/internal/model"
	"github.com/gyeh/clinstats/internal/normalize"
)

var encounterRequired = []column{
	{name: "encounter_id", aliases: []string{"encounterid", "id"}},
	{name: "patient_id", aliases: []string{"patientid", "patient"}},
	{name: "start_time", aliases: []string{"starttime", "start", "startdate"}},
	{name: "stop_time", aliases: []string{"stoptime", "stop", "end", "enddate"}},
}

var encounterReason = column{
	name:    "reason",
	aliases: []string{"reason", "reasondescription"},
}

// Encounters cleans a raw encounter table. Rows are dropped when the
// encounter or patient id is missing, the id is a duplicate, either
// timestamp fails to parse, or start is after stop. Reason stays
// nullable; encounters whose patient never appears in the patient table
// are kept here and resolved during enrichment.
func Encounters(t *csvread.Table) ([]model.Encounter, model.TableCounts, error) {
	idx, err := resolve(t, encounterRequired)
	if err != nil {
		return nil, model.TableCounts{}, err
	}
	reasonIdx := resolveOptional(t, encounterReason)

	out := make([]model.Encounter, 0, t.Len())
	seen := make(map[string]bool, t.Len())

	for i := 0; i < t.Len(); i++ {
		id := normalize.ID(t.Field(i, idx["encounter_id"]))
		patientID := normalize.ID(t.Field(i, idx["patient_id"]))
		if id == "" || patientID == "" || seen[id] {
			continue
		}
		start := normalize.ParseTimestamp(t.Field(i, idx["start_time"]))
		stop := normalize.ParseTimestamp(t.Field(i, idx["stop_time"]))
		if start == nil || stop == nil || start.After(*stop) {
			continue
		}
		seen[id] = true

		e := model.Encounter{
			EncounterID: id,
			PatientID:   patientID,
			StartTime:   *start,
			StopTime:    *stop,
		}
		if reasonIdx >= 0 {
			e.Reason = normalize.FreeText(t.Field(i, reasonIdx))
		}
		out = append(out, e)
	}

	return out, counts(t.Len(), len(out)), nil
}
