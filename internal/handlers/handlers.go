package handlers

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// ArchiveQueue is the goal archive worker pool as seen by readiness checks.
type ArchiveQueue interface {
	QueueDepth() int
}

// Pinger is satisfied by *pgxpool.Pool and driver.Conn.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	Archive    ArchiveQueue
	Postgres   Pinger
	ClickHouse Pinger
	Redis      RedisPinger
	Logger     *zap.Logger
	// Services
	Tournament logic.TournamentService
	Teams      logic.TeamService
	Analytics  logic.AnalyticsService
}

type Handler struct {
	archive    ArchiveQueue
	pg         Pinger
	ch         Pinger
	redis      RedisPinger
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	tournament logic.TournamentService
	teams      logic.TeamService
	analytics  logic.AnalyticsService
}

func New(cfg Config) *Handler {
	return &Handler{
		archive:    cfg.Archive,
		pg:         cfg.Postgres,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		tournament: cfg.Tournament,
		teams:      cfg.Teams,
		analytics:  cfg.Analytics,
	}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tournament/run", h.RunTournament)
		r.Get("/bracket", h.GetBracket)
		r.Get("/matches/{stage}/{slot}", h.GetMatch)
		r.Get("/history", h.GetHistory)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.ListTeams)
			r.Post("/", h.RegisterTeam)
			r.Post("/backfill", h.BackfillRosters)
			r.Delete("/{id}", h.DeleteTeam)
		})

		r.Get("/scorers/top", h.GetTopScorers)
		r.Get("/analytics/teams", h.GetTeamAnalytics)
		r.Get("/analytics/goals", h.GetGoalAnalytics)
	})
}
