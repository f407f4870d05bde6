package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/gateway"
	"github.com/2beens/workoutcal/internal/middleware"
	"github.com/2beens/workoutcal/internal/session"
	"github.com/2beens/workoutcal/internal/telemetry/metrics"
	"github.com/2beens/workoutcal/internal/workout"
	"github.com/2beens/workoutcal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=api_test

type sessionRegistry interface {
	Get(ctx context.Context, userID string) (*session.Session, error)
}

type Handler struct {
	sessions    sessionRegistry
	identity    gateway.Identity
	definitions bodyparams.Definitions
	versionInfo string
}

type NewHandlerParams struct {
	Sessions    sessionRegistry
	Identity    gateway.Identity
	Definitions bodyparams.Definitions
	VersionInfo string
}

func NewHandler(params NewHandlerParams) *Handler {
	defs := params.Definitions
	if defs == nil {
		defs = bodyparams.DefaultDefinitions()
	}
	return &Handler{
		sessions:    params.Sessions,
		identity:    params.Identity,
		definitions: defs,
		versionInfo: params.VersionInfo,
	}
}

// SetupRoutes registers all routes on r. Write routes go through the rate
// limiter when one is given.
func (h *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	writesPerMin int,
) {
	write := func(f http.HandlerFunc) http.Handler { return f }
	if rateLimiter != nil && writesPerMin > 0 {
		limit := middleware.RateLimit(rateLimiter, metricsManager, "writes", writesPerMin)
		write = func(f http.HandlerFunc) http.Handler { return limit(f) }
	}

	r.HandleFunc("/", h.handleRoot).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", h.handleVersion).Methods("GET", "OPTIONS").Name("version")

	r.HandleFunc("/events", h.handleListEvents).Methods("GET", "OPTIONS").Name("list-events")
	r.Handle("/events/fetch", write(h.handleFetchEvents)).Methods("POST", "OPTIONS").Name("fetch-events")
	r.Handle("/events", write(h.handleCreateEvent)).Methods("POST", "OPTIONS").Name("create-event")
	r.Handle("/events", write(h.handleUpdateEvent)).Methods("PUT", "OPTIONS").Name("update-event")
	r.Handle("/events/all", write(h.handleUpdateAllEvents)).Methods("PUT", "OPTIONS").Name("update-all-events")
	r.Handle("/events/reschedule", write(h.handleReschedule)).Methods("POST", "OPTIONS").Name("reschedule-event")
	r.Handle("/events/copy", write(h.handleBeginCopy)).Methods("POST", "OPTIONS").Name("begin-copy")
	r.Handle("/events/copy", write(h.handleCancelCopy)).Methods("DELETE", "OPTIONS").Name("cancel-copy")
	r.Handle("/events/{id}", write(h.handleDeleteEvent)).Methods("DELETE", "OPTIONS").Name("delete-event")

	r.HandleFunc("/results/previous", h.handlePreviousResults).Methods("GET", "OPTIONS").Name("previous-results")
	r.HandleFunc("/results/combined", h.handleCombinedResults).Methods("GET", "OPTIONS").Name("combined-results")

	r.HandleFunc("/date", h.handleGetDate).Methods("GET", "OPTIONS").Name("get-date")
	r.HandleFunc("/date", h.handleSetDate).Methods("PUT", "OPTIONS").Name("set-date")
	r.Handle("/date/copy", write(h.handleSetCopyDate)).Methods("PUT", "OPTIONS").Name("set-copy-date")

	r.HandleFunc("/draft", h.handleGetDraft).Methods("GET", "OPTIONS").Name("get-draft")
	r.HandleFunc("/draft", h.handlePutDraft).Methods("PUT", "OPTIONS").Name("put-draft")
	r.HandleFunc("/draft/reset", h.handleResetDraft).Methods("POST", "OPTIONS").Name("reset-draft")
	r.HandleFunc("/draft/exercises/{exerciseId}/open", h.handleOpenExercise).Methods("POST", "OPTIONS").Name("open-exercise")
	r.HandleFunc("/draft/exercises/{exerciseId}", h.handleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-exercise")
	r.HandleFunc("/draft/exercises/{exerciseId}/sets", h.handleAddSet).Methods("POST", "OPTIONS").Name("add-set")
	r.HandleFunc("/draft/exercises/{exerciseId}/sets", h.handleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/draft/exercises/{exerciseId}/sets/{setId}", h.handleRemoveSet).Methods("DELETE", "OPTIONS").Name("remove-set")

	r.HandleFunc("/body-params/definitions", h.handleBodyParamsDefinitions).Methods("GET", "OPTIONS").Name("body-params-definitions")
	r.HandleFunc("/body-params/filtered", h.handleFilteredBodyParams).Methods("GET", "OPTIONS").Name("filtered-body-params")
	r.HandleFunc("/body-params/active", h.handleSetActiveBodyParam).Methods("PUT", "OPTIONS").Name("set-active-body-param")
	r.HandleFunc("/body-params", h.handleListBodyParams).Methods("GET", "OPTIONS").Name("list-body-params")
	r.Handle("/body-params", write(h.handlePushBodyParam)).Methods("POST", "OPTIONS").Name("push-body-param")

	r.HandleFunc("/favorites", h.handleListFavorites).Methods("GET", "OPTIONS").Name("list-favorites")
	r.Handle("/favorites/{exerciseId}", write(h.handleToggleFavorite)).Methods("POST", "OPTIONS").Name("toggle-favorite")
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (h *Handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, h.versionInfo)
}

// sessionFor resolves the state layer of the requesting user. On failure the
// response is already written.
func (h *Handler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	ctx := r.Context()
	userID, err := h.identity.CurrentUserID(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, false
	}

	s, err := h.sessions.Get(ctx, userID)
	if err != nil {
		log.Errorf("get session for %s: %s", userID, err)
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return nil, false
	}
	return s, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Debugf("%s %s, unmarshal json params: %s", r.Method, r.URL.Path, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeStoreError maps state layer errors to a status code.
func writeStoreError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gateway.ErrRowNotFound),
		errors.Is(err, workout.ErrExerciseNotFound),
		errors.Is(err, workout.ErrSetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, gateway.ErrDuplicateRow),
		errors.Is(err, workout.ErrNoDraft):
		status = http.StatusConflict
	case errors.Is(err, bodyparams.ErrNoActiveParam):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		log.Debugf("%s: %s", msg, err)
		return
	}

	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", msg, err)
	} else {
		log.Debugf("%s: %s", msg, err)
	}
	http.Error(w, msg, status)
}
