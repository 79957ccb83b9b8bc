package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/knockout-cup/cup-api/docs"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint. ClickHouse is only checked when configured.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.pg != nil && h.pg.Ping(ctx) == nil,
		"redis":    h.redis != nil && h.redis.Ping(ctx).Err() == nil,
	}
	if h.ch != nil {
		checks["clickhouse"] = h.ch.Ping(ctx) == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	queueDepth := 0
	if h.archive != nil {
		queueDepth = h.archive.QueueDepth()
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": queueDepth,
	})
}

// SwaggerDoc serves the generated OpenAPI document
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// queryInt reads a positive integer query parameter, or returns fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
