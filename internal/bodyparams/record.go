package bodyparams

import (
	"sort"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"
)

// Record holds all measurements taken on one calendar day.
type Record struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Params []Param   `json:"params"`
}

type Param struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func (r Record) Clone() Record {
	params := make([]Param, len(r.Params))
	copy(params, r.Params)
	r.Params = params
	return r
}

func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Merge upserts (day, label) = value into a copy of records and returns it.
// The record for day is matched by calendar day; a missing one is created
// with newID. records itself is never modified.
func Merge(records []Record, day time.Time, label string, value float64, newID func() string) []Record {
	out := CloneRecords(records)

	for i := range out {
		if !calendar.SameDay(out[i].Date, day) {
			continue
		}
		for j := range out[i].Params {
			if out[i].Params[j].Label == label {
				out[i].Params[j].Value = value
				return out
			}
		}
		out[i].Params = append(out[i].Params, Param{Label: label, Value: value})
		return out
	}

	return append(out, Record{
		ID:     newID(),
		Date:   day,
		Params: []Param{{Label: label, Value: value}},
	})
}

// FilterByLabel keeps the records measuring label, each reduced to that
// single entry, most recent first. An empty label yields nil.
func FilterByLabel(records []Record, label string) []Record {
	if label == "" {
		return nil
	}

	filtered := []Record{}
	for _, r := range records {
		for _, p := range r.Params {
			if p.Label == label {
				filtered = append(filtered, Record{
					ID:     r.ID,
					Date:   r.Date,
					Params: []Param{p},
				})
				break
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered
}
