// Package engine simulates an eight-team single-elimination cup: goal
// models, scorer attribution, tie-breaks, stage progression and the
// championship record.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Config wires an Engine.
type Config struct {
	Teams   TeamStore
	Results ResultsStore
	Rand    Rand
	Seeding SeedingPolicy
	Params  Params
	Logger  *zap.Logger
}

// Engine runs tournaments. It is not safe for concurrent use; callers that
// share one Engine must serialise runs.
type Engine struct {
	teams   TeamStore
	results ResultsStore
	rng     Rand
	seeding SeedingPolicy
	sim     *Simulator
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// Outcome is what a completed run hands back to its caller.
type Outcome struct {
	RunID    uuid.UUID
	Champion models.Team
	RunnerUp models.Team
	Stages   []*StageResult
	History  models.TournamentResult
}

// Matches flattens every stage's results in play order.
func (o *Outcome) Matches() []models.MatchResult {
	var all []models.MatchResult
	for _, s := range o.Stages {
		all = append(all, s.Matches...)
	}
	return all
}

// New builds an Engine. Missing Rand, Seeding and Logger fall back to a
// non-deterministic source, ranked seeding and a no-op logger.
func New(cfg Config) *Engine {
	if cfg.Rand == nil {
		cfg.Rand = NewRand(0)
	}
	if cfg.Seeding == nil {
		cfg.Seeding = RankedSeeding{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		teams:   cfg.Teams,
		results: cfg.Results,
		rng:     cfg.Rand,
		seeding: cfg.Seeding,
		sim:     NewSimulator(cfg.Rand, cfg.Params),
		logger:  cfg.Logger.Sugar(),
		now:     time.Now,
	}
}

// Simulator exposes the match simulator sharing the engine's random source.
func (e *Engine) Simulator() *Simulator {
	return e.sim
}

// Seeding returns the policy the engine applies to every run.
func (e *Engine) Seeding() SeedingPolicy {
	return e.seeding
}

// RunFromStore loads entrants from the team store and runs a tournament.
func (e *Engine) RunFromStore(ctx context.Context) (*Outcome, error) {
	if e.teams == nil {
		return nil, fmt.Errorf("engine has no team store")
	}
	teams, err := e.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return e.Run(ctx, teams)
}

// Run plays quarter-finals, semi-finals and the final over teams and records
// the champion. Validation failures return before anything is written.
// Store errors end the run; results already written stay in place.
func (e *Engine) Run(ctx context.Context, teams []models.Team) (*Outcome, error) {
	valid, rejected := ValidateTeams(teams)
	for _, err := range rejected {
		e.logger.Warnw("Skipping team", "error", err)
	}
	if len(valid) < BracketSize {
		return nil, fmt.Errorf("%w: %d valid of %d supplied, need %d",
			ErrInsufficientTeams, len(valid), len(teams), BracketSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.New()
	out := &Outcome{RunID: runID}
	e.logger.Infow("Tournament started", "run", runID, "seeding", e.seeding.Name(), "entrants", len(valid))

	pairings := e.seeding.Seed(e.rng, valid)
	var last *StageResult
	for i, stage := range models.Stages {
		if i > 0 {
			var err error
			if pairings, err = e.seeding.Advance(last.Winners); err != nil {
				return nil, fmt.Errorf("build %s: %w", stage, err)
			}
		}
		res, err := e.RunStage(ctx, runID, stage, pairings)
		if err != nil {
			return nil, err
		}
		out.Stages = append(out.Stages, res)
		last = res
	}

	if len(last.Winners) != 1 || len(last.Losers) != 1 {
		return nil, fmt.Errorf("%w: final produced %d winners", ErrMissingBracketSlot, len(last.Winners))
	}
	out.Champion = last.Winners[0]
	out.RunnerUp = last.Losers[0]

	now := e.now().UTC()
	out.History = models.TournamentResult{
		RunID:          runID,
		Champion:       out.Champion.Country,
		RunnerUp:       out.RunnerUp.Country,
		ChampionRating: out.Champion.Strength(),
		Year:           now.Year(),
		CreatedAt:      now,
	}
	if err := e.results.WriteTournamentHistory(ctx, out.History); err != nil {
		persistenceFailures.WithLabelValues("tournament_history").Inc()
		return nil, fmt.Errorf("write tournament history: %w", err)
	}

	tournamentsCompleted.Inc()
	e.logger.Infow("Tournament finished", "run", runID, "champion", out.Champion.Country, "runnerUp", out.RunnerUp.Country)
	return out, nil
}
