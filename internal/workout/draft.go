package workout

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNoDraft          = errors.New("no workout draft in progress")
	ErrExerciseNotFound = errors.New("exercise not found in draft")
	ErrSetNotFound      = errors.New("set not found")
)

// Draft is the in-progress workout being authored or edited.
// Writers: the UI layer (via api handlers) and the events store during a
// single-event reschedule. Everybody else reads snapshots.
type Draft struct {
	mu sync.RWMutex

	workoutID        string
	title            string
	color            string
	params           []ExerciseParams
	tonnage          float64
	openedExerciseID string
	nextSetID        int64
}

func NewDraft() *Draft {
	return &Draft{
		params: []ExerciseParams{},
	}
}

// DraftSnapshot is a read-only copy of the draft state.
type DraftSnapshot struct {
	WorkoutID                 string           `json:"workoutId"`
	Title                     string           `json:"title"`
	Color                     string           `json:"color"`
	ExercisesParamsCollection []ExerciseParams `json:"exercisesParamsCollection"`
	Tonnage                   float64          `json:"tonnage"`
	OpenedExerciseID          string           `json:"openedExerciseId"`
}

func (d *Draft) Snapshot() DraftSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DraftSnapshot{
		WorkoutID:                 d.workoutID,
		Title:                     d.title,
		Color:                     d.color,
		ExercisesParamsCollection: CloneParams(d.params),
		Tonnage:                   d.tonnage,
		OpenedExerciseID:          d.openedExerciseID,
	}
}

func (d *Draft) WorkoutID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.workoutID
}

func (d *Draft) OpenedExerciseID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.openedExerciseID
}

// Start begins a brand new workout with a freshly generated id.
func (d *Draft) Start(title, color string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.workoutID = NewID()
	d.title = title
	d.color = color
	return d.workoutID
}

// SetMeta updates title and color of the current draft.
func (d *Draft) SetMeta(title, color string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
	d.color = color
}

// EditUsersEvent loads an existing event into the draft for editing.
func (d *Draft) EditUsersEvent(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.workoutID = e.WorkoutID
	d.title = e.Title
	d.color = e.Color
	d.params = CloneParams(e.ExercisesParamsCollection)
	d.tonnage = e.Tonnage
	for _, p := range d.params {
		for _, s := range p.Sets {
			if s.SetID != nil && *s.SetID >= d.nextSetID {
				d.nextSetID = *s.SetID + 1
			}
		}
	}
}

// Reset clears the draft after a commit.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

func (d *Draft) resetLocked() {
	d.workoutID = ""
	d.title = ""
	d.color = ""
	d.params = []ExerciseParams{}
	d.tonnage = 0
	d.openedExerciseID = ""
	d.nextSetID = time.Now().UnixMilli()
}

// AddExercise appends an exercise (no-op if already present) and opens it.
func (d *Draft) AddExercise(exerciseID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.workoutID == "" {
		return ErrNoDraft
	}
	if d.indexLocked(exerciseID) == -1 {
		d.params = append(d.params, ExerciseParams{ExerciseID: exerciseID, Sets: []Set{}})
	}
	d.openedExerciseID = exerciseID
	return nil
}

func (d *Draft) RemoveExercise(exerciseID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexLocked(exerciseID)
	if i == -1 {
		return ErrExerciseNotFound
	}
	d.params = append(d.params[:i], d.params[i+1:]...)
	if d.openedExerciseID == exerciseID {
		d.openedExerciseID = ""
	}
	d.tonnage = Tonnage(d.params)
	return nil
}

// OpenExercise moves the open-exercise pointer. An empty id closes it.
func (d *Draft) OpenExercise(exerciseID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openedExerciseID = exerciseID
}

// OpenedSets returns a copy of the sets of the open exercise, never nil.
func (d *Draft) OpenedSets() []Set {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.indexLocked(d.openedExerciseID)
	if i == -1 || d.params[i].Sets == nil {
		return []Set{}
	}
	return CloneSets(d.params[i].Sets)
}

// AddSet appends a set to exerciseID and returns its id.
func (d *Draft) AddSet(exerciseID string, s Set) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexLocked(exerciseID)
	if i == -1 {
		return 0, ErrExerciseNotFound
	}
	id := d.nextSetID
	d.nextSetID++
	s.SetID = &id
	d.params[i].Sets = append(d.params[i].Sets, s)
	d.tonnage = Tonnage(d.params)
	return id, nil
}

func (d *Draft) UpdateSet(exerciseID string, s Set) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexLocked(exerciseID)
	if i == -1 {
		return ErrExerciseNotFound
	}
	if s.SetID == nil {
		return ErrSetNotFound
	}
	for j, existing := range d.params[i].Sets {
		if existing.SetID != nil && *existing.SetID == *s.SetID {
			d.params[i].Sets[j] = s
			d.tonnage = Tonnage(d.params)
			return nil
		}
	}
	return ErrSetNotFound
}

func (d *Draft) RemoveSet(exerciseID string, setID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexLocked(exerciseID)
	if i == -1 {
		return ErrExerciseNotFound
	}
	sets := d.params[i].Sets
	for j, existing := range sets {
		if existing.SetID != nil && *existing.SetID == setID {
			d.params[i].Sets = append(sets[:j], sets[j+1:]...)
			d.tonnage = Tonnage(d.params)
			return nil
		}
	}
	return ErrSetNotFound
}

func (d *Draft) indexLocked(exerciseID string) int {
	if exerciseID == "" {
		return -1
	}
	for i, p := range d.params {
		if p.ExerciseID == exerciseID {
			return i
		}
	}
	return -1
}
