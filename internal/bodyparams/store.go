package bodyparams

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrNoActiveParam = errors.New("no active body param selected")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=bodyparams_test

type profileStore interface {
	FetchColumn(ctx context.Context, userID, column string, dst any, loading *gateway.LoadingFlag) error
	PersistColumn(ctx context.Context, userID, column string, value any, loading *gateway.LoadingFlag) error
}

// dateSource is the only part of the chosen-date context this store reads.
type dateSource interface {
	Date() time.Time
}

// Store is the per-user body measurements collection. Local state only
// changes after the whole collection was persisted.
type Store struct {
	// serializes Fetch and Push, so read-merge-persist never interleaves
	writeMu sync.Mutex

	mu          sync.RWMutex
	records     []Record
	activeField int
	version     uint64
	filtered    filteredMemo

	userID      string
	profile     profileStore
	date        dateSource
	definitions Definitions
	loading     *gateway.LoadingFlag

	NewIDFunc func() string
}

type filteredMemo struct {
	valid   bool
	version uint64
	label   string
	records []Record
}

type NewStoreParams struct {
	UserID       string
	ProfileStore profileStore
	Date         dateSource
	Definitions  Definitions
	Loading      *gateway.LoadingFlag
}

func NewStore(params NewStoreParams) *Store {
	defs := params.Definitions
	if defs == nil {
		defs = DefaultDefinitions()
	}
	return &Store{
		records:     []Record{},
		userID:      params.UserID,
		profile:     params.ProfileStore,
		date:        params.Date,
		definitions: defs,
		loading:     params.Loading,
		NewIDFunc:   uuid.NewString,
	}
}

// Load reads the stored collection without touching local state.
func (s *Store) Load(ctx context.Context) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyparams.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records := []Record{}
	if err := s.profile.FetchColumn(ctx, s.userID, gateway.ColumnBodyParams, &records, s.loading); err != nil {
		return nil, fmt.Errorf("fetch body params: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Store) Fetch(ctx context.Context) error {
	return s.FetchThen(ctx, nil)
}

// FetchThen loads the stored collection, runs commit and swaps the local
// records, all while holding the write lock, so a concurrent Push lands
// either before the load or after the swap. A failed load runs neither.
func (s *Store) FetchThen(ctx context.Context, commit func()) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if commit != nil {
		commit()
	}
	s.Replace(records)
	return nil
}

// Replace swaps the local collection.
func (s *Store) Replace(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = CloneRecords(records)
	s.version++
}

// Push merges value for def into the record of the currently chosen day and
// persists the whole collection.
func (s *Store) Push(ctx context.Context, value float64, def Definition) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bodyparams.push")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if def.Label == "" {
		return ErrNoActiveParam
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	merged := Merge(s.records, s.date.Date(), def.Label, value, s.NewIDFunc)
	s.mu.RUnlock()

	if err := s.profile.PersistColumn(ctx, s.userID, gateway.ColumnBodyParams, merged, s.loading); err != nil {
		return fmt.Errorf("persist body params: %w", err)
	}

	s.mu.Lock()
	s.records = merged
	s.version++
	s.mu.Unlock()

	log.Debugf("body params: %s=%v pushed for user %s", def.Label, value, s.userID)
	return nil
}

// PushActive pushes value for the currently active field.
func (s *Store) PushActive(ctx context.Context, value float64) error {
	def, ok := s.ActiveParam()
	if !ok {
		return ErrNoActiveParam
	}
	return s.Push(ctx, value, def)
}

func (s *Store) SetActiveField(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeField = id
}

func (s *Store) ActiveField() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeField
}

// ActiveParam resolves the active field against the definitions table.
func (s *Store) ActiveParam() (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.definitions.ByID(s.activeField)
}

func (s *Store) Definitions() Definitions {
	out := make(Definitions, len(s.definitions))
	copy(out, s.definitions)
	return out
}

func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneRecords(s.records)
}

// FilteredByActive is the history of the active measurement, most recent
// first. Nil when no field is active.
func (s *Store) FilteredByActive() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.definitions.ByID(s.activeField)
	if !ok {
		return nil
	}
	return CloneRecords(s.filteredLocked(def.Label))
}

// FilteredByLabel is FilteredByActive for an explicit label.
func (s *Store) FilteredByLabel(label string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == "" {
		return nil
	}
	return CloneRecords(s.filteredLocked(label))
}

func (s *Store) filteredLocked(label string) []Record {
	m := s.filtered
	if m.valid && m.version == s.version && m.label == label {
		return m.records
	}
	records := FilterByLabel(s.records, label)
	s.filtered = filteredMemo{
		valid:   true,
		version: s.version,
		label:   label,
		records: records,
	}
	return records
}
