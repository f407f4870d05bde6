package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/workoutcal/internal/calendar"
	"github.com/2beens/workoutcal/internal/session"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"
	"github.com/2beens/workoutcal/internal/workout"
	"github.com/2beens/workoutcal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DateResponse struct {
	Date                 string  `json:"date"`
	CopyDate             *string `json:"copyDate"`
	RescheduleCounter    int     `json:"rescheduleCounter"`
	RescheduledEventDate string  `json:"rescheduledEventDate"`
	CopyMode             bool    `json:"copyMode"`
}

// SetDateRequest updates only the fields that are present.
type SetDateRequest struct {
	Date                 *string `json:"date"`
	RescheduleCounter    *int    `json:"rescheduleCounter"`
	RescheduledEventDate *string `json:"rescheduledEventDate"`
}

// SetCopyDateRequest sets or, with a null copyDate, clears the copy date.
type SetCopyDateRequest struct {
	CopyDate *string `json:"copyDate"`
}

// DraftRequest either starts/retitles the draft, or, with editWorkoutId,
// loads an existing event into it.
type DraftRequest struct {
	EditWorkoutID string `json:"editWorkoutId"`
	Title         string `json:"title"`
	Color         string `json:"color"`
}

type AddSetResponse struct {
	SetID int64                 `json:"setId"`
	Draft workout.DraftSnapshot `json:"draft"`
}

func dateResponse(s *session.Session) DateResponse {
	snap := s.Date.Snapshot()
	resp := DateResponse{
		Date:                 formatDay(snap.Date),
		RescheduleCounter:    snap.RescheduleCounter,
		RescheduledEventDate: formatDay(snap.RescheduledEventDate),
		CopyMode:             s.Events.CopyMode(),
	}
	if snap.CopyDate != nil {
		cd := formatDay(*snap.CopyDate)
		resp.CopyDate = &cd
	}
	return resp
}

func (h *Handler) handleGetDate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, dateResponse(s))
}

func (h *Handler) handleSetDate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.date.set")
	defer span.End()

	var req SetDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var date, rescheduledDate time.Time
	var err error
	if req.Date != nil {
		if date, err = calendar.ParseDay(*req.Date); err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
	}
	if req.RescheduledEventDate != nil {
		if rescheduledDate, err = calendar.ParseDay(*req.RescheduledEventDate); err != nil {
			http.Error(w, "invalid rescheduled event date", http.StatusBadRequest)
			return
		}
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if req.Date != nil {
		s.Date.SetDate(date)
	}
	if req.RescheduledEventDate != nil {
		s.Date.SetRescheduledEventDate(rescheduledDate)
	}
	if req.RescheduleCounter != nil {
		s.Date.SetRescheduleCounter(*req.RescheduleCounter)
	}
	pkg.WriteJSON(w, http.StatusOK, dateResponse(s))
}

// handleSetCopyDate sets the copy date. In copy mode this commits the
// pending copy, after which the copy date is cleared again.
func (h *Handler) handleSetCopyDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.date.set-copy")
	defer span.End()

	var req SetCopyDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var copyDate *time.Time
	if req.CopyDate != nil {
		d, err := calendar.ParseDay(*req.CopyDate)
		if err != nil {
			http.Error(w, "invalid copy date", http.StatusBadRequest)
			return
		}
		copyDate = &d
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Date.SetCopyDate(ctx, copyDate); err != nil {
		writeStoreError(w, "copy event failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, dateResponse(s))
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}

func (h *Handler) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	switch {
	case req.EditWorkoutID != "":
		event, found := s.Events.Event(req.EditWorkoutID)
		if !found {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		s.Draft.EditUsersEvent(event)
		s.Date.SetDate(calendar.Day(event.Date))
	case s.Draft.WorkoutID() == "":
		id := s.Draft.Start(req.Title, req.Color)
		log.Debugf("user %s started workout draft %s", s.UserID, id)
	default:
		s.Draft.SetMeta(req.Title, req.Color)
	}
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}

func (h *Handler) handleResetDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.Draft.Reset()
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}

// handleOpenExercise adds the exercise to the draft if missing and opens it.
func (h *Handler) handleOpenExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID := mux.Vars(r)["exerciseId"]
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Draft.AddExercise(exerciseID); err != nil {
		writeStoreError(w, "open exercise failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}

func (h *Handler) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID := mux.Vars(r)["exerciseId"]
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Draft.RemoveExercise(exerciseID); err != nil {
		writeStoreError(w, "remove exercise failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}

func (h *Handler) handleAddSet(w http.ResponseWriter, r *http.Request) {
	exerciseID := mux.Vars(r)["exerciseId"]
	var set workout.Set
	if !decodeJSON(w, r, &set) {
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	id, err := s.Draft.AddSet(exerciseID, set)
	if err != nil {
		writeStoreError(w, "add set failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, AddSetResponse{
		SetID: id,
		Draft: s.Draft.Snapshot(),
	})
}

func (h *Handler) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	exerciseID := mux.Vars(r)["exerciseId"]
	var set workout.Set
	if !decodeJSON(w, r, &set) {
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Draft.UpdateSet(exerciseID, set); err != nil {
		writeStoreError(w, "update set failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}

func (h *Handler) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	setID, err := strconv.ParseInt(vars["setId"], 10, 64)
	if err != nil {
		http.Error(w, "error, set id NaN", http.StatusBadRequest)
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := s.Draft.RemoveSet(vars["exerciseId"], setID); err != nil {
		writeStoreError(w, "remove set failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, s.Draft.Snapshot())
}
