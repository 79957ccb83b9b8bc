package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

// GoalArchive accepts goal events for asynchronous analytics storage.
type GoalArchive interface {
	Enqueue(event *models.GoalEvent) bool
}

// Results is the engine's results store: bracket slots and history go to
// Postgres, scorer tallies to Redis, and each goal is queued for the
// archive once its match is stored.
type Results struct {
	pg      *Postgres
	redis   *Redis
	archive GoalArchive
	logger  *zap.SugaredLogger
}

// NewResults wires a Results store. archive may be nil.
func NewResults(pg *Postgres, redis *Redis, archive GoalArchive, logger *zap.Logger) *Results {
	return &Results{pg: pg, redis: redis, archive: archive, logger: logger.Sugar()}
}

func (r *Results) WriteMatch(ctx context.Context, stage models.Stage, slot int, m models.MatchResult) error {
	if err := r.pg.WriteMatch(ctx, stage, slot, m); err != nil {
		return err
	}
	if r.archive == nil {
		return nil
	}
	for _, ev := range m.Scorers {
		opponent := m.TeamB
		if ev.Team == m.TeamB {
			opponent = m.TeamA
		}
		ok := r.archive.Enqueue(&models.GoalEvent{
			RunID:     m.RunID,
			MatchID:   m.ID,
			Stage:     stage,
			Slot:      slot,
			Team:      ev.Team,
			Opponent:  opponent,
			Player:    ev.Player,
			Minute:    ev.Minute,
			Timestamp: m.CreatedAt,
		})
		if !ok {
			r.logger.Warnw("Goal archive queue full, dropping event", "stage", stage, "slot", slot, "minute", ev.Minute)
		}
	}
	return nil
}

func (r *Results) WriteTournamentHistory(ctx context.Context, t models.TournamentResult) error {
	if err := r.pg.WriteTournamentHistory(ctx, t); err != nil {
		return err
	}
	// live notification only; the history row is the record
	_ = r.redis.PublishEvent(ctx, "champion", t)
	return nil
}

func (r *Results) IncrementScorerTally(ctx context.Context, country, player string) error {
	return r.redis.IncrementScorerTally(ctx, country, player)
}
