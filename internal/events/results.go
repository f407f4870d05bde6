package events

import (
	"sort"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/workout"
)

// CombinedRow pairs a set of the open exercise with the set at the same
// position in the previous session. Rows past the current sets carry only
// the previous values.
type CombinedRow struct {
	SetID       *int64   `json:"setId"`
	Weight      *float64 `json:"weight"`
	Repeats     *float64 `json:"repeats"`
	Effort      *float64 `json:"effort"`
	PrevWeight  *float64 `json:"prevWeight"`
	PrevRepeats *float64 `json:"prevRepeats"`
	PrevEffort  *float64 `json:"prevEffort"`
}

// PreviousSets returns the sets of exerciseID from the most recent event
// strictly before pivot's day that logged a non-empty set list for it.
// Only one historical session is ever returned. The result is a copy and
// is never nil.
func PreviousSets(events []workout.Event, exerciseID string, pivot time.Time) []workout.Set {
	if exerciseID == "" {
		return []workout.Set{}
	}

	type candidate struct {
		pos   int
		event *workout.Event
	}
	var before []candidate
	for i := range events {
		if calendar.BeforeDay(events[i].Date, pivot) {
			before = append(before, candidate{pos: i, event: &events[i]})
		}
	}

	// most recent day first; within a day, the later entry wins
	sort.SliceStable(before, func(i, j int) bool {
		di, dj := calendar.Day(before[i].event.Date), calendar.Day(before[j].event.Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return before[i].pos > before[j].pos
	})

	for _, c := range before {
		if sets := c.event.Sets(exerciseID); len(sets) > 0 {
			return workout.CloneSets(sets)
		}
	}
	return []workout.Set{}
}

// CombineSets merges current and previous by position.
// len(result) == max(len(current), len(previous)).
func CombineSets(current, previous []workout.Set) []CombinedRow {
	n := len(current)
	if len(previous) > n {
		n = len(previous)
	}

	rows := make([]CombinedRow, 0, n)
	for i := 0; i < n; i++ {
		var row CombinedRow
		if i < len(current) {
			cur := workout.CloneSets(current[i : i+1])[0]
			row.SetID = cur.SetID
			row.Weight = cur.Weight
			row.Repeats = cur.Repeats
			row.Effort = cur.Effort
		}
		if i < len(previous) {
			prev := workout.CloneSets(previous[i : i+1])[0]
			row.PrevWeight = prev.Weight
			row.PrevRepeats = prev.Repeats
			row.PrevEffort = prev.Effort
		}
		rows = append(rows, row)
	}
	return rows
}
