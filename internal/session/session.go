package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/events"
	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/telemetry/metrics"
	"github.com/2beens/workoutcal/internal/workout"

	log "github.com/sirupsen/logrus"
)

// Session is the state layer of one user: the chosen-date context, the
// workout draft and both stores, all sharing one loading flag.
type Session struct {
	UserID     string
	Date       *calendar.ChosenDate
	Draft      *workout.Draft
	BodyParams *bodyparams.Store
	Events     *events.Store
	Loading    *gateway.LoadingFlag
}

type NewSessionParams struct {
	UserID         string
	RowStore       gateway.RowStore
	ProfileStore   gateway.ProfileStore
	Definitions    bodyparams.Definitions
	ResultsCache   *events.ResultsCache
	MetricsManager *metrics.Manager
	Today          time.Time
}

func New(params NewSessionParams) *Session {
	loading := &gateway.LoadingFlag{}
	date := calendar.NewChosenDate(calendar.Day(params.Today))
	draft := workout.NewDraft()
	body := bodyparams.NewStore(bodyparams.NewStoreParams{
		UserID:       params.UserID,
		ProfileStore: params.ProfileStore,
		Date:         date,
		Definitions:  params.Definitions,
		Loading:      loading,
	})
	store := events.NewStore(events.NewStoreParams{
		UserID:         params.UserID,
		RowStore:       params.RowStore,
		ProfileStore:   params.ProfileStore,
		BodyParams:     body,
		Draft:          draft,
		ChosenDate:     date,
		Loading:        loading,
		ResultsCache:   params.ResultsCache,
		MetricsManager: params.MetricsManager,
	})
	return &Session{
		UserID:     params.UserID,
		Date:       date,
		Draft:      draft,
		BodyParams: body,
		Events:     store,
		Loading:    loading,
	}
}

type entry struct {
	ready   chan struct{}
	session *Session
	err     error
}

// Registry keeps one Session per user. Sessions are created on first use
// and only registered after their initial fetch succeeded.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	rowStore       gateway.RowStore
	profileStore   gateway.ProfileStore
	definitions    bodyparams.Definitions
	resultsCache   *events.ResultsCache
	metricsManager *metrics.Manager

	NowFunc func() time.Time
}

type NewRegistryParams struct {
	RowStore       gateway.RowStore
	ProfileStore   gateway.ProfileStore
	Definitions    bodyparams.Definitions
	ResultsCache   *events.ResultsCache
	MetricsManager *metrics.Manager
}

func NewRegistry(params NewRegistryParams) *Registry {
	cache := params.ResultsCache
	if cache == nil {
		cache = events.NewResultsCache(0)
	}
	return &Registry{
		sessions:       map[string]*entry{},
		rowStore:       params.RowStore,
		profileStore:   params.ProfileStore,
		definitions:    params.Definitions,
		resultsCache:   cache,
		metricsManager: params.MetricsManager,
		NowFunc:        time.Now,
	}
}

// Get returns the session of userID, creating and fetching it if needed.
// Concurrent callers for the same user wait for a single fetch.
func (r *Registry) Get(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, gateway.ErrNoUser
	}

	r.mu.Lock()
	if e, ok := r.sessions[userID]; ok {
		r.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}
		return e.session, nil
	}
	e := &entry{ready: make(chan struct{})}
	r.sessions[userID] = e
	r.mu.Unlock()

	s := New(NewSessionParams{
		UserID:         userID,
		RowStore:       r.rowStore,
		ProfileStore:   r.profileStore,
		Definitions:    r.definitions,
		ResultsCache:   r.resultsCache,
		MetricsManager: r.metricsManager,
		Today:          r.NowFunc().UTC(),
	})
	err := s.Events.Fetch(ctx)

	r.mu.Lock()
	if err != nil {
		e.err = fmt.Errorf("initial fetch for %s: %w", userID, err)
		delete(r.sessions, userID)
	} else {
		e.session = s
	}
	r.updateGaugeLocked()
	r.mu.Unlock()
	close(e.ready)

	if e.err != nil {
		log.Errorf("session registry: %s", e.err)
		return nil, e.err
	}
	log.Debugf("session registry: session for %s created", userID)
	return s, nil
}

// Drop forgets the session of userID, e.g. after logout.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[userID]
	if !ok {
		return
	}
	select {
	case <-e.ready:
		delete(r.sessions, userID)
		r.updateGaugeLocked()
	default:
		// still being created; its creator owns the entry
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readyLocked()
}

// readyLocked counts the sessions whose initial fetch succeeded.
func (r *Registry) readyLocked() int {
	n := 0
	for _, e := range r.sessions {
		if e.session != nil {
			n++
		}
	}
	return n
}

func (r *Registry) updateGaugeLocked() {
	if r.metricsManager == nil {
		return
	}
	r.metricsManager.GaugeActiveSessions.Set(float64(r.readyLocked()))
}
