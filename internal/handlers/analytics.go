package handlers

import (
	"net/http"
)

// GetTopScorers returns the cumulative scorer leaderboard
// @Summary Top Scorers
// @Tags Analytics
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Success 200 {array} models.ScorerTally
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /scorers/top [get]
func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	list, err := h.analytics.TopScorers(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		h.logger.Errorw("Failed to get top scorers", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get top scorers")
		return
	}
	h.jsonResponse(w, http.StatusOK, list)
}

// GetTeamAnalytics returns the field's ratings, strongest first
// @Summary Team Analytics
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.TeamAnalytics
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /analytics/teams [get]
func (h *Handler) GetTeamAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.TeamAnalytics(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to get team analytics", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get team analytics")
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// GetGoalAnalytics returns goals by 15-minute window and by stage
// @Summary Goal Analytics
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.GoalAnalytics
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /analytics/goals [get]
func (h *Handler) GetGoalAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.GoalAnalytics(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to get goal analytics", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get goal analytics")
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}
