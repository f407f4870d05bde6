package api

import (
	"net/http"

	"github.com/2beens/workoutcal/internal/bodyparams"
	"github.com/2beens/workoutcal/internal/telemetry/tracing"
	"github.com/2beens/workoutcal/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

type BodyParamsResponse struct {
	Records []bodyparams.Record `json:"records"`
}

type FilteredBodyParamsResponse struct {
	Label   string              `json:"label"`
	Records []bodyparams.Record `json:"records"`
}

// PushBodyParamRequest pushes value for definitionId, or for the active
// field when definitionId is zero.
type PushBodyParamRequest struct {
	DefinitionID int     `json:"definitionId"`
	Value        float64 `json:"value"`
}

type SetActiveBodyParamRequest struct {
	ID int `json:"id"`
}

type ActiveBodyParamResponse struct {
	ID         int                    `json:"id"`
	Definition *bodyparams.Definition `json:"definition"`
}

type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

type ToggleFavoriteResponse struct {
	ExerciseID string   `json:"exerciseId"`
	Favorite   bool     `json:"favorite"`
	Favorites  []string `json:"favorites"`
}

func (h *Handler) handleBodyParamsDefinitions(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, h.definitions)
}

func (h *Handler) handleListBodyParams(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, BodyParamsResponse{Records: s.BodyParams.Records()})
}

// handleFilteredBodyParams returns the history of ?label, or of the active
// field without one.
func (h *Handler) handleFilteredBodyParams(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	label := r.URL.Query().Get("label")
	var records []bodyparams.Record
	if label != "" {
		records = s.BodyParams.FilteredByLabel(label)
	} else {
		def, active := s.BodyParams.ActiveParam()
		if !active {
			http.Error(w, "no active body param selected", http.StatusBadRequest)
			return
		}
		label = def.Label
		records = s.BodyParams.FilteredByActive()
	}
	if records == nil {
		records = []bodyparams.Record{}
	}
	pkg.WriteJSON(w, http.StatusOK, FilteredBodyParamsResponse{Label: label, Records: records})
}

func (h *Handler) handleSetActiveBodyParam(w http.ResponseWriter, r *http.Request) {
	var req SetActiveBodyParamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	s.BodyParams.SetActiveField(req.ID)

	resp := ActiveBodyParamResponse{ID: req.ID}
	if def, found := s.BodyParams.ActiveParam(); found {
		resp.Definition = &def
	}
	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePushBodyParam(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyparams.push")
	defer span.End()

	var req PushBodyParamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	span.SetAttributes(attribute.Int("definitionId", req.DefinitionID))

	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var err error
	if req.DefinitionID == 0 {
		err = s.BodyParams.PushActive(ctx, req.Value)
	} else {
		def, found := h.definitions.ByID(req.DefinitionID)
		if !found {
			http.Error(w, "unknown body param definition", http.StatusBadRequest)
			return
		}
		err = s.Events.PushBodyParams(ctx, req.Value, def)
	}
	if err != nil {
		writeStoreError(w, "push body param failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, BodyParamsResponse{Records: s.BodyParams.Records()})
}

func (h *Handler) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, http.StatusOK, FavoritesResponse{Favorites: s.Events.Favorites()})
}

func (h *Handler) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.favorites.toggle")
	defer span.End()

	exerciseID := mux.Vars(r)["exerciseId"]
	s, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	favorite, err := s.Events.ToggleFavorite(ctx, exerciseID)
	if err != nil {
		writeStoreError(w, "toggle favorite failed", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, ToggleFavoriteResponse{
		ExerciseID: exerciseID,
		Favorite:   favorite,
		Favorites:  s.Events.Favorites(),
	})
}
