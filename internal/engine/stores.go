package engine

import (
	"context"

	"github.com/knockout-cup/cup-api/internal/models"
)

// TeamStore is the read side the engine loads entrants from.
type TeamStore interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
}

// ResultsStore receives everything the engine produces. Implementations
// must tolerate concurrent WriteMatch and IncrementScorerTally calls.
type ResultsStore interface {
	WriteMatch(ctx context.Context, stage models.Stage, slot int, result models.MatchResult) error
	WriteTournamentHistory(ctx context.Context, result models.TournamentResult) error
	IncrementScorerTally(ctx context.Context, country, player string) error
}
