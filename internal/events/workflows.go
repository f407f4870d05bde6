package events

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"
	"github.com/2beens/workoutcal/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// Reschedule moves event. With futureEventsMove, every event on or after the
// chosen date is shifted by the reschedule counter and the whole collection
// is persisted. Otherwise only event is moved to the rescheduled event date,
// through the draft and the update path.
func (s *Store) Reschedule(ctx context.Context, event workout.Event, futureEventsMove bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.reschedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("futureEventsMove", futureEventsMove))

	if futureEventsMove {
		return s.rescheduleFuture(ctx)
	}

	s.draft.EditUsersEvent(event)
	s.date.SetDate(s.date.RescheduledEventDate())
	if err := s.Update(ctx); err != nil {
		return fmt.Errorf("reschedule %s: %w", event.WorkoutID, err)
	}
	s.draft.Reset()
	return nil
}

// rescheduleFuture shifts dates locally before the single persist call.
// A failed persist leaves the local shift in place until the next fetch.
func (s *Store) rescheduleFuture(ctx context.Context) error {
	offset := s.date.RescheduleCounter()
	if offset == 0 {
		log.Debugln("events store: reschedule: zero day offset, nothing to move")
		return nil
	}
	pivot := s.date.Date()

	s.mu.Lock()
	moved := 0
	for i := range s.events {
		if calendar.OnOrAfterDay(s.events[i].Date, pivot) {
			s.events[i].Date = calendar.AddDays(s.events[i].Date, offset)
			moved++
		}
	}
	if moved > 0 {
		s.version = eventsVersion.Add(1)
	}
	s.mu.Unlock()

	log.Debugf("events store: reschedule: %d events moved by %d days", moved, offset)
	return s.UpdateAll(ctx)
}

// BeginCopy marks event as the pending copy object and enters copy mode.
// The copy is committed once a copy date is chosen.
func (s *Store) BeginCopy(event workout.Event) {
	obj := event.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyObject = &obj
	s.copyMode = true
}

// SetCopyMode toggles copy mode. Leaving it clears the copy object and the
// copy date, even when both are already clear.
func (s *Store) SetCopyMode(ctx context.Context, on bool) error {
	s.mu.Lock()
	s.copyMode = on
	if !on {
		s.copyObject = nil
	}
	s.mu.Unlock()

	if on {
		return nil
	}
	return s.date.SetCopyDate(ctx, nil)
}

func (s *Store) CopyMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyMode
}

// CopyObject returns a copy of the pending copy object, if any.
func (s *Store) CopyObject() (workout.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copyObject == nil {
		return workout.Event{}, false
	}
	return s.copyObject.Clone(), true
}

// onCopyDateChange commits the pending copy when copyDate becomes non-nil.
// Changes seen while a commit is running are ignored.
func (s *Store) onCopyDateChange(ctx context.Context, _, next *time.Time) (err error) {
	if next == nil {
		return nil
	}

	s.mu.Lock()
	if s.copyState == copyCommitting {
		s.mu.Unlock()
		log.Debugln("events store: copy date changed during commit, ignored")
		return nil
	}
	if s.copyObject == nil {
		s.mu.Unlock()
		log.Debugln("events store: copy date set without a copy object")
		return s.date.SetCopyDate(ctx, nil)
	}
	src := s.copyObject.Clone()
	s.copyState = copyCommitting
	s.mu.Unlock()

	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.commit-copy")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	commitErr := s.insertCopy(ctx, src, *next)

	s.mu.Lock()
	s.copyState = copyIdle
	if commitErr == nil {
		s.copyObject = nil
		s.copyMode = false
	}
	s.mu.Unlock()

	return multierr.Append(commitErr, s.date.SetCopyDate(ctx, nil))
}

func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// ToggleFavorite adds or removes exerciseID from the favorites and persists
// the whole list. It reports whether the exercise is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, exerciseID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.events.toggle-favorite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.favoritesMu.Lock()
	defer s.favoritesMu.Unlock()

	current := s.Favorites()
	next := make([]string, 0, len(current)+1)
	found := false
	for _, id := range current {
		if id == exerciseID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, exerciseID)
	}

	if err := s.profile.PersistColumn(ctx, s.userID, gateway.ColumnFavoriteExercises, next, s.loading); err != nil {
		return found, fmt.Errorf("persist favorite exercises: %w", err)
	}

	s.mu.Lock()
	s.favorites = next
	s.mu.Unlock()
	return !found, nil
}
