package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/knockout-cup/cup-api/internal/models"
)

// StageResult is the ordered outcome of one bracket round.
type StageResult struct {
	Stage   models.Stage
	Winners []models.Team
	Losers  []models.Team
	Matches []models.MatchResult
}

// RunStage simulates pairings in order and persists every result under
// stage, slot 1..N. Matches are played one after another; their writes are
// issued together and all of them finish before RunStage returns. Winners
// keep the pairing order. A failed write does not undo the others.
func (e *Engine) RunStage(ctx context.Context, runID uuid.UUID, stage models.Stage, pairings []models.Pairing) (*StageResult, error) {
	start := time.Now()
	defer func() { stageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds()) }()

	out := &StageResult{
		Stage:   stage,
		Winners: make([]models.Team, 0, len(pairings)),
		Losers:  make([]models.Team, 0, len(pairings)),
		Matches: make([]models.MatchResult, 0, len(pairings)),
	}

	for i, p := range pairings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := e.sim.SimulateMatch(p.A, p.B)
		result.RunID = runID
		result.Stage = stage
		result.Slot = i + 1

		winner, loser := p.A, p.B
		if result.Winner == p.B.Country {
			winner, loser = p.B, p.A
		}
		out.Winners = append(out.Winners, winner)
		out.Losers = append(out.Losers, loser)
		out.Matches = append(out.Matches, result)

		e.logger.Infow("Match simulated",
			"run", runID, "stage", stage, "slot", result.Slot,
			"teamA", result.TeamA, "teamB", result.TeamB,
			"score", fmt.Sprintf("%d-%d", result.ScoreA, result.ScoreB),
			"winner", result.Winner, "tieBreak", result.TieBreak,
		)
	}

	// errgroup.Group without a context: one failing write must not cancel
	// its siblings.
	var g errgroup.Group
	for _, m := range out.Matches {
		g.Go(func() error {
			return e.persistMatch(ctx, m)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) persistMatch(ctx context.Context, m models.MatchResult) error {
	if err := e.results.WriteMatch(ctx, m.Stage, m.Slot, m); err != nil {
		persistenceFailures.WithLabelValues("write_match").Inc()
		e.logger.Errorw("Failed to persist match", "stage", m.Stage, "slot", m.Slot, "error", err)
		return fmt.Errorf("write %s match %d: %w", m.Stage, m.Slot, err)
	}
	for _, ev := range m.Scorers {
		if err := e.results.IncrementScorerTally(ctx, ev.Team, ev.Player); err != nil {
			persistenceFailures.WithLabelValues("scorer_tally").Inc()
			e.logger.Errorw("Failed to update scorer tally", "country", ev.Team, "player", ev.Player, "error", err)
			return fmt.Errorf("tally %s/%s: %w", ev.Team, ev.Player, err)
		}
	}
	return nil
}
