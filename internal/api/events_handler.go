package api

import (
	"net/http"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/events"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"
	"github.com/2beens/workoutcal/internal/workout"
	"github.com/2beens/workoutcal/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

type EventsResponse struct {
	Events []workout.Event `json:"events"`
}

type RescheduleRequest struct {
	WorkoutID        string `json:"workoutId"`
	FutureEventsMove bool   `json:"futureEventsMove"`
}

type CopyRequest struct {
	WorkoutID string `json:"workoutId"`
}

type CopyStateResponse struct {
	CopyMode   bool           `json:"copyMode"`
	CopyObject *workout.Event `json:"copyObject"`
}

type PreviousResultsResponse struct {
	ExerciseID string        `json:"exerciseId"`
	Date       string        `json:"date"`
	Sets       []workout.Set `json:"sets"`
}

type CombinedResultsResponse struct {
	Rows []events.CombinedRow `json:"rows"`
}

// handleListEvents lists all events, the events of ?date, or the events
// in the inclusive ?from..?to range.
func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	list := s.Events.Events()
	switch {
	case q.Get("date") != "":
		day, err := calendar.ParseDay(q.Get("date"))
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		list = s.Events.EventsOn(day)
	case q.Get("from") != "" || q.Get("to") != "":
		from, err := calendar.ParseDay(q.Get("from"))
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		to, err := calendar.ParseDay(q.Get("to"))
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		if to.Before(from) {
			http.Error(w, "to date before from date", http.StatusBadRequest)
			return
		}
		list = s.Events.EventsBetween(from, to)
	}

	span.SetAttributes(attribute.Int("events.count", len(list)))
	pkg.WriteJSON(w, http.StatusOK, EventsResponse{Events: list})
}

func (h *Handler) handleFetchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.fetch")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Events.Fetch(ctx); err != nil {
		writeStoreError(w, "fetch events failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, EventsResponse{Events: s.Events.Events()})
}

// handleCreateEvent commits the draft, or the pending copy in copy mode.
func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.create")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Events.Create(ctx); err != nil {
		writeStoreError(w, "create event failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, EventsResponse{Events: s.Events.Events()})
}

func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.update")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Events.Update(ctx); err != nil {
		writeStoreError(w, "update event failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, EventsResponse{Events: s.Events.Events()})
}

func (h *Handler) handleUpdateAllEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.update-all")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Events.UpdateAll(ctx); err != nil {
		writeStoreError(w, "update all events failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, EventsResponse{Events: s.Events.Events()})
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("workoutId", id))

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Events.Delete(ctx, workout.TableWorkouts, workout.ColumnWorkoutID, id); err != nil {
		writeStoreError(w, "delete event failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, EventsResponse{Events: s.Events.Events()})
}

// handleReschedule moves one event to the rescheduled event date, or every
// event from the chosen date on by the reschedule counter. Both are set
// through PUT /date beforehand.
func (h *Handler) handleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.reschedule")
	defer span.End()

	var req RescheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var event workout.Event
	if !req.FutureEventsMove {
		if req.WorkoutID == "" {
			http.Error(w, "error, workout id empty", http.StatusBadRequest)
			return
		}
		found := false
		if event, found = s.Events.Event(req.WorkoutID); !found {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
	}

	if err := s.Events.Reschedule(ctx, event, req.FutureEventsMove); err != nil {
		writeStoreError(w, "reschedule failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, EventsResponse{Events: s.Events.Events()})
}

func (h *Handler) handleBeginCopy(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.begin-copy")
	defer span.End()

	var req CopyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	event, found := s.Events.Event(req.WorkoutID)
	if !found {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	s.Events.BeginCopy(event)
	pkg.WriteJSON(w, http.StatusOK, copyState(s.Events))
}

func (h *Handler) handleCancelCopy(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.cancel-copy")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Events.SetCopyMode(ctx, false); err != nil {
		writeStoreError(w, "cancel copy failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, copyState(s.Events))
}

func copyState(store *events.Store) CopyStateResponse {
	resp := CopyStateResponse{CopyMode: store.CopyMode()}
	if obj, ok := store.CopyObject(); ok {
		resp.CopyObject = &obj
	}
	return resp
}

// handlePreviousResults returns the previous sets of ?exerciseId before
// ?date, defaulting to the open exercise and the chosen date.
func (h *Handler) handlePreviousResults(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.results.previous")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	exerciseID := r.URL.Query().Get("exerciseId")
	if exerciseID == "" {
		exerciseID = s.Draft.OpenedExerciseID()
	}
	pivot := s.Date.Date()
	if d := r.URL.Query().Get("date"); d != "" {
		var err error
		if pivot, err = calendar.ParseDay(d); err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
	}

	pkg.WriteJSON(w, http.StatusOK, PreviousResultsResponse{
		ExerciseID: exerciseID,
		Date:       formatDay(pivot),
		Sets:       s.Events.PreviousResultsFor(exerciseID, pivot),
	})
}

func (h *Handler) handleCombinedResults(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.results.combined")
	defer span.End()

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, CombinedResultsResponse{Rows: s.Events.CombinedResults()})
}

func formatDay(t time.Time) string {
	return t.Format(calendar.DayLayout)
}
