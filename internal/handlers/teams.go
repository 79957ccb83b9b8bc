package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knockout-cup/cup-api/internal/engine"
	"github.com/knockout-cup/cup-api/internal/models"
	"github.com/knockout-cup/cup-api/internal/store"
)

// ============================================================================
// TEAM ENDPOINTS
// ============================================================================

// ListTeams returns every registered team
// @Summary List Teams
// @Tags Teams
// @Produce json
// @Success 200 {array} models.Team
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list teams", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}
	h.jsonResponse(w, http.StatusOK, teams)
}

// RegisterTeam adds a team with a generated squad
// @Summary Register Team
// @Description Generates a 23-player squad and derives the team rating from it
// @Tags Teams
// @Accept json
// @Produce json
// @Param body body models.RegisterTeamRequest true "Team"
// @Success 201 {object} models.Team
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Country already registered"
// @Router /teams [post]
func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.RegisterTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teams.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateTeam):
			h.errorResponse(w, http.StatusConflict, err.Error())
		case errors.Is(err, engine.ErrInvalidTeamData):
			h.errorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Errorw("Failed to register team", "country", req.Country, "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Failed to register team")
		}
		return
	}
	h.jsonResponse(w, http.StatusCreated, team)
}

// BackfillRosters generates squads for teams that have none
// @Summary Backfill Rosters
// @Tags Teams
// @Produce json
// @Success 200 {object} models.BackfillResult
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /teams/backfill [post]
func (h *Handler) BackfillRosters(w http.ResponseWriter, r *http.Request) {
	res, err := h.teams.Backfill(r.Context())
	if err != nil {
		h.logger.Errorw("Roster backfill failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Roster backfill failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// DeleteTeam withdraws a team from future tournaments
// @Summary Delete Team
// @Tags Teams
// @Param id path string true "Team ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Team not found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /teams/{id} [delete]
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.teams.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrTeamNotFound):
			h.errorResponse(w, http.StatusNotFound, "Team not found")
		case errors.Is(err, engine.ErrInvalidTeamData):
			h.errorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Errorw("Failed to delete team", "id", id, "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Failed to delete team")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
