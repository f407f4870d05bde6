package workout

import (
	"time"

	"github.com/google/uuid"
)

// TableWorkouts is the remote table holding events.
const (
	TableWorkouts   = "workouts"
	ColumnWorkoutID = "workoutId"
)

// Event is a scheduled workout. JSON field names are part of the storage
// contract and must round-trip unchanged.
type Event struct {
	WorkoutID                 string           `json:"workoutId"`
	Date                      time.Time        `json:"date"`
	Title                     string           `json:"title"`
	Color                     string           `json:"color"`
	ExercisesParamsCollection []ExerciseParams `json:"exercisesParamsCollection"`
	Tonnage                   float64          `json:"tonnage"`
}

// EventPatch is the update payload: an Event without its key.
type EventPatch struct {
	Date                      time.Time        `json:"date"`
	Title                     string           `json:"title"`
	Color                     string           `json:"color"`
	ExercisesParamsCollection []ExerciseParams `json:"exercisesParamsCollection"`
	Tonnage                   float64          `json:"tonnage"`
}

// WithID turns the patch back into a full event keyed by workoutID.
func (p EventPatch) WithID(workoutID string) Event {
	return Event{
		WorkoutID:                 workoutID,
		Date:                      p.Date,
		Title:                     p.Title,
		Color:                     p.Color,
		ExercisesParamsCollection: p.ExercisesParamsCollection,
		Tonnage:                   p.Tonnage,
	}
}

type ExerciseParams struct {
	ExerciseID string `json:"exerciseId"`
	Sets       []Set  `json:"sets"`
}

// Set is one performed set. Every field may be null.
type Set struct {
	SetID   *int64   `json:"setId"`
	Weight  *float64 `json:"weight"`
	Repeats *float64 `json:"repeats"`
	Effort  *float64 `json:"effort"`
}

// NewID returns a fresh client-side identifier.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy, so callers never share set slices with the store.
func (e Event) Clone() Event {
	e.ExercisesParamsCollection = CloneParams(e.ExercisesParamsCollection)
	return e
}

// Sets returns the sets logged for exerciseID, or nil.
func (e Event) Sets(exerciseID string) []Set {
	for _, p := range e.ExercisesParamsCollection {
		if p.ExerciseID == exerciseID {
			return p.Sets
		}
	}
	return nil
}

func CloneParams(params []ExerciseParams) []ExerciseParams {
	if params == nil {
		return []ExerciseParams{}
	}
	out := make([]ExerciseParams, len(params))
	for i, p := range params {
		out[i] = ExerciseParams{
			ExerciseID: p.ExerciseID,
			Sets:       CloneSets(p.Sets),
		}
	}
	return out
}

func CloneSets(sets []Set) []Set {
	if sets == nil {
		return nil
	}
	out := make([]Set, len(sets))
	for i, s := range sets {
		out[i] = Set{
			SetID:   clonePtr(s.SetID),
			Weight:  clonePtr(s.Weight),
			Repeats: clonePtr(s.Repeats),
			Effort:  clonePtr(s.Effort),
		}
	}
	return out
}

// Tonnage sums weight x repeats over every set that has both values.
func Tonnage(params []ExerciseParams) float64 {
	var total float64
	for _, p := range params {
		for _, s := range p.Sets {
			if s.Weight == nil || s.Repeats == nil {
				continue
			}
			total += *s.Weight * *s.Repeats
		}
	}
	return total
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Ptr is a small helper for building sets in literals.
func Ptr[T any](v T) *T {
	return &v
}
