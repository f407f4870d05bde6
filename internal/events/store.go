package events

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/telemetry/metrics"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"
	"github.com/2beens/workoutcal/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=events_test

type rowStore interface {
	FetchRows(ctx context.Context, table, userID string, dst any, loading *gateway.LoadingFlag) error
	InsertRow(ctx context.Context, table, userID string, row any, loading *gateway.LoadingFlag) error
	UpdateRow(ctx context.Context, table, userID, keyColumn, keyValue string, row any, loading *gateway.LoadingFlag) error
	UpdateAllRows(ctx context.Context, table, userID, keyColumn string, rows any, loading *gateway.LoadingFlag) error
	DeleteRow(ctx context.Context, table, userID, idColumn, id string, loading *gateway.LoadingFlag) error
}

type profileStore interface {
	FetchColumn(ctx context.Context, userID, column string, dst any, loading *gateway.LoadingFlag) error
	PersistColumn(ctx context.Context, userID, column string, value any, loading *gateway.LoadingFlag) error
}

type bodyParamsStore interface {
	FetchThen(ctx context.Context, commit func()) error
	Push(ctx context.Context, value float64, def bodyparams.Definition) error
}

type copyState int

const (
	copyIdle copyState = iota
	copyCommitting
)

// eventsVersion numbers every events mutation across all stores, so results
// cache keys of two stores for the same user never collide.
var eventsVersion atomic.Uint64

// Store is the authoritative in-memory list of a user's workout events.
// It is the only writer of that list. Local state is only changed after
// the matching remote call succeeded, with the exception of the bulk
// reschedule, which shifts dates before persisting them.
//
// The mutex is never held across a gateway call.
type Store struct {
	mu         sync.Mutex
	events     []workout.Event
	favorites  []string
	version    uint64
	copyObject *workout.Event
	copyMode   bool
	copyState  copyState

	// serializes read-modify-persist of the favorites column
	favoritesMu sync.Mutex

	userID         string
	rows           rowStore
	profile        profileStore
	bodyParams     bodyParamsStore
	draft          *workout.Draft
	date           *calendar.ChosenDate
	loading        *gateway.LoadingFlag
	cache          *ResultsCache
	metricsManager *metrics.Manager

	NewIDFunc func() string
}

type NewStoreParams struct {
	UserID         string
	RowStore       rowStore
	ProfileStore   profileStore
	BodyParams     bodyParamsStore
	Draft          *workout.Draft
	ChosenDate     *calendar.ChosenDate
	Loading        *gateway.LoadingFlag
	ResultsCache   *ResultsCache
	MetricsManager *metrics.Manager
}

func NewStore(params NewStoreParams) *Store {
	cache := params.ResultsCache
	if cache == nil {
		cache = NewResultsCache(0)
	}
	s := &Store{
		events:         []workout.Event{},
		favorites:      []string{},
		version:        eventsVersion.Add(1),
		userID:         params.UserID,
		rows:           params.RowStore,
		profile:        params.ProfileStore,
		bodyParams:     params.BodyParams,
		draft:          params.Draft,
		date:           params.ChosenDate,
		loading:        params.Loading,
		cache:          cache,
		metricsManager: params.MetricsManager,
		NewIDFunc:      workout.NewID,
	}
	s.date.OnCopyDateChange(s.onCopyDateChange)
	return s
}

func (s *Store) UserID() string {
	return s.userID
}

// Loading reports whether any gateway call of this session is in flight.
func (s *Store) Loading() bool {
	return s.loading.Loading()
}

// Fetch loads events, favorites and body params one after another. Local
// state is replaced only when all three succeeded.
func (s *Store) Fetch(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var events []workout.Event
	if err := s.rows.FetchRows(ctx, workout.TableWorkouts, s.userID, &events, s.loading); err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}

	favorites := []string{}
	if err := s.profile.FetchColumn(ctx, s.userID, gateway.ColumnFavoriteExercises, &favorites, s.loading); err != nil {
		return fmt.Errorf("fetch favorite exercises: %w", err)
	}
	if favorites == nil {
		favorites = []string{}
	}

	events = dedupeByWorkoutID(events)

	// body params go last: their write lock keeps a concurrent push from
	// being overwritten by the collection loaded here
	commit := func() {
		s.mu.Lock()
		s.events = events
		s.favorites = favorites
		s.version = eventsVersion.Add(1)
		s.mu.Unlock()
	}
	if err := s.bodyParams.FetchThen(ctx, commit); err != nil {
		return fmt.Errorf("fetch body params: %w", err)
	}

	span.SetAttributes(attribute.Int("events", len(events)))
	log.Debugf("events store: fetched %d events for user %s", len(events), s.userID)
	return nil
}

// Delete removes the row remotely, then the local event with the same workoutId.
func (s *Store) Delete(ctx context.Context, table, idColumn, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.rows.DeleteRow(ctx, table, s.userID, idColumn, id, s.loading); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i == -1 {
		log.Debugf("events store: delete: %s not found locally", id)
		return nil
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.version = eventsVersion.Add(1)
	s.countCommitted("delete")
	return nil
}

// Create commits either the pending copy object (copy mode) or the current
// draft. With neither in place it does nothing.
func (s *Store) Create(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	copyObject := s.copyObject
	committing := s.copyState == copyCommitting
	s.mu.Unlock()

	if copyObject != nil {
		if committing {
			log.Debugln("events store: create: copy already being committed")
			return nil
		}
		copyDate := s.date.CopyDate()
		if copyDate == nil {
			log.Debugln("events store: create: copy object pending without a copy date")
			return nil
		}
		return s.insertCopy(ctx, *copyObject, *copyDate)
	}

	snap := s.draft.Snapshot()
	if snap.WorkoutID == "" {
		log.Debugln("events store: create: no draft to commit")
		return nil
	}

	event := workout.Event{
		WorkoutID:                 snap.WorkoutID,
		Date:                      s.date.Date(),
		Title:                     snap.Title,
		Color:                     snap.Color,
		ExercisesParamsCollection: snap.ExercisesParamsCollection,
		Tonnage:                   snap.Tonnage,
	}
	if err := s.rows.InsertRow(ctx, workout.TableWorkouts, s.userID, event, s.loading); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	s.mu.Lock()
	s.upsertLocked(event)
	s.mu.Unlock()
	s.countCommitted("create")
	return nil
}

// insertCopy persists a fresh event built from src on date.
func (s *Store) insertCopy(ctx context.Context, src workout.Event, date time.Time) error {
	event := workout.Event{
		WorkoutID:                 s.NewIDFunc(),
		Date:                      date,
		Title:                     src.Title,
		Color:                     src.Color,
		ExercisesParamsCollection: workout.CloneParams(src.ExercisesParamsCollection),
		Tonnage:                   src.Tonnage,
	}
	if err := s.rows.InsertRow(ctx, workout.TableWorkouts, s.userID, event, s.loading); err != nil {
		return fmt.Errorf("insert copied event: %w", err)
	}

	s.mu.Lock()
	s.upsertLocked(event)
	s.mu.Unlock()
	s.countCommitted("copy")
	return nil
}

// Update re-commits the draft over the event with the draft's workoutId.
// A workoutId missing from the local list is a silent no-op locally.
func (s *Store) Update(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snap := s.draft.Snapshot()
	if snap.WorkoutID == "" {
		log.Debugln("events store: update: no draft to commit")
		return nil
	}
	span.SetAttributes(attribute.String("workoutId", snap.WorkoutID))

	patch := workout.EventPatch{
		Date:                      s.date.Date(),
		Title:                     snap.Title,
		Color:                     snap.Color,
		ExercisesParamsCollection: snap.ExercisesParamsCollection,
		Tonnage:                   snap.Tonnage,
	}
	if err := s.rows.UpdateRow(
		ctx,
		workout.TableWorkouts,
		s.userID,
		workout.ColumnWorkoutID,
		snap.WorkoutID,
		patch,
		s.loading,
	); err != nil {
		return fmt.Errorf("update event %s: %w", snap.WorkoutID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(snap.WorkoutID)
	if i == -1 {
		log.Debugf("events store: update: %s not found locally", snap.WorkoutID)
		return nil
	}
	s.events[i] = patch.WithID(snap.WorkoutID)
	s.version = eventsVersion.Add(1)
	s.countCommitted("update")
	return nil
}

// UpdateAll persists the whole local collection in one call.
func (s *Store) UpdateAll(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.update-all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all := s.Events()
	if err := s.rows.UpdateAllRows(ctx, workout.TableWorkouts, s.userID, workout.ColumnWorkoutID, all, s.loading); err != nil {
		return fmt.Errorf("update all events: %w", err)
	}
	s.countCommitted("bulk")
	return nil
}

// PreviousResults is PreviousResultsFor the exercise open in the draft and
// the chosen date.
func (s *Store) PreviousResults() []workout.Set {
	return s.PreviousResultsFor(s.draft.OpenedExerciseID(), s.date.Date())
}

func (s *Store) PreviousResultsFor(exerciseID string, pivot time.Time) []workout.Set {
	if exerciseID == "" {
		return []workout.Set{}
	}

	s.mu.Lock()
	key := resultsCacheKey(s.userID, s.version, exerciseID, pivot)
	if sets, ok := s.cache.get(key); ok {
		s.mu.Unlock()
		if s.metricsManager != nil {
			s.metricsManager.CounterResultsCacheHits.Inc()
		}
		return sets
	}
	sets := PreviousSets(s.events, exerciseID, pivot)
	s.mu.Unlock()

	if s.metricsManager != nil {
		s.metricsManager.CounterResultsCacheMisses.Inc()
	}
	s.cache.set(key, sets)
	return sets
}

// CombinedResults pairs the open exercise's draft sets with PreviousResults.
func (s *Store) CombinedResults() []CombinedRow {
	return CombineSets(s.draft.OpenedSets(), s.PreviousResults())
}

// PushBodyParams merges value for def into the chosen day's body record.
func (s *Store) PushBodyParams(ctx context.Context, value float64, def bodyparams.Definition) error {
	return s.bodyParams.Push(ctx, value, def)
}

// Events returns a copy of all events, ordered by date.
func (s *Store) Events() []workout.Event {
	s.mu.Lock()
	out := make([]workout.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (s *Store) EventsOn(day time.Time) []workout.Event {
	out := []workout.Event{}
	for _, e := range s.Events() {
		if calendar.SameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out
}

// EventsBetween returns events whose day falls within [from, to], both inclusive.
func (s *Store) EventsBetween(from, to time.Time) []workout.Event {
	out := []workout.Event{}
	for _, e := range s.Events() {
		if calendar.OnOrAfterDay(e.Date, from) && !calendar.BeforeDay(to, e.Date) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) Event(workoutID string) (workout.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(workoutID)
	if i == -1 {
		return workout.Event{}, false
	}
	return s.events[i].Clone(), true
}

func (s *Store) indexLocked(workoutID string) int {
	for i := range s.events {
		if s.events[i].WorkoutID == workoutID {
			return i
		}
	}
	return -1
}

// upsertLocked appends event, or replaces an entry with the same workoutId.
func (s *Store) upsertLocked(event workout.Event) {
	if i := s.indexLocked(event.WorkoutID); i != -1 {
		log.Debugf("events store: %s already present locally, replacing", event.WorkoutID)
		s.events[i] = event
	} else {
		s.events = append(s.events, event)
	}
	s.version = eventsVersion.Add(1)
}

func (s *Store) countCommitted(kind string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterEventsCommitted.WithLabelValues(kind).Inc()
}

// dedupeByWorkoutID keeps the last row for every workoutId.
func dedupeByWorkoutID(events []workout.Event) []workout.Event {
	if events == nil {
		return []workout.Event{}
	}
	last := make(map[string]int, len(events))
	for i, e := range events {
		last[e.WorkoutID] = i
	}
	if len(last) == len(events) {
		return events
	}
	out := make([]workout.Event, 0, len(last))
	for i, e := range events {
		if last[e.WorkoutID] == i {
			out = append(out, e)
		}
	}
	log.Warnf("events store: %d duplicate workout rows dropped", len(events)-len(out))
	return out
}
