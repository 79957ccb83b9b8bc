package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/knockout-cup/cup-api/internal/engine"
	"github.com/knockout-cup/cup-api/internal/logic"
	"github.com/knockout-cup/cup-api/internal/models"
	"github.com/knockout-cup/cup-api/internal/store"
)

// ============================================================================
// TOURNAMENT ENDPOINTS
// ============================================================================

// RunTournament plays a full knockout tournament over the registered teams
// @Summary Run Tournament
// @Description Seeds eight teams, plays quarter-finals, semi-finals and the final, and records the champion
// @Tags Tournament
// @Produce json
// @Success 200 {object} models.TournamentOutcome
// @Failure 409 {object} map[string]string "Run already in progress"
// @Failure 422 {object} map[string]string "Fewer than eight valid teams"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /tournament/run [post]
func (h *Handler) RunTournament(w http.ResponseWriter, r *http.Request) {
	out, err := h.tournament.Run(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInsufficientTeams):
			h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, store.ErrRunInProgress):
			h.errorResponse(w, http.StatusConflict, "A tournament run is already in progress")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			h.errorResponse(w, http.StatusServiceUnavailable, "Tournament run cancelled")
		default:
			h.logger.Errorw("Tournament run failed", "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Tournament run failed")
		}
		return
	}
	h.jsonResponse(w, http.StatusOK, out)
}

// GetBracket returns the stored results of every stage
// @Summary Get Bracket
// @Tags Tournament
// @Produce json
// @Success 200 {object} models.Bracket
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /bracket [get]
func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	b, err := h.tournament.Bracket(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to get bracket", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get bracket")
		return
	}
	h.jsonResponse(w, http.StatusOK, b)
}

// GetMatch returns the stored result in one bracket slot
// @Summary Get Match
// @Tags Tournament
// @Produce json
// @Param stage path string true "Stage" Enums(quarterFinals, semiFinals, final)
// @Param slot path int true "Slot, starting at 1"
// @Success 200 {object} models.MatchResult
// @Failure 400 {object} map[string]string "Invalid stage or slot"
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /matches/{stage}/{slot} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	stage := models.Stage(chi.URLParam(r, "stage"))
	if !stage.Valid() {
		h.errorResponse(w, http.StatusBadRequest, "Unknown stage")
		return
	}
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil || slot < 1 {
		h.errorResponse(w, http.StatusBadRequest, "Slot must be a positive integer")
		return
	}

	m, err := h.tournament.Match(r.Context(), stage, slot)
	if err != nil {
		if errors.Is(err, logic.ErrMatchNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Match not found")
			return
		}
		h.logger.Errorw("Failed to get match", "stage", stage, "slot", slot, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get match")
		return
	}
	h.jsonResponse(w, http.StatusOK, m)
}

// GetHistory returns past champions, newest first
// @Summary Hall of Fame
// @Tags Tournament
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Success 200 {array} models.TournamentResult
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.tournament.History(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		h.logger.Errorw("Failed to get history", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get history")
		return
	}
	h.jsonResponse(w, http.StatusOK, list)
}
