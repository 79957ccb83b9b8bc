package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Seeding policy names accepted by ParseSeedingPolicy.
const (
	SeedingRanked  = "ranked"
	SeedingShuffle = "shuffle"
)

// SeedingPolicy picks the bracket entrants, pairs them for the opening round
// and decides how winners meet in later rounds. One policy drives a whole run.
type SeedingPolicy interface {
	Name() string
	// Seed selects exactly BracketSize teams from at least that many and
	// returns the quarter-final pairings.
	Seed(rng Rand, teams []models.Team) []models.Pairing
	// Advance pairs the ordered winners of a round.
	Advance(winners []models.Team) ([]models.Pairing, error)
}

// ParseSeedingPolicy resolves a policy by name. An empty name selects ranked.
func ParseSeedingPolicy(name string) (SeedingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SeedingRanked:
		return RankedSeeding{}, nil
	case SeedingShuffle:
		return ShuffleSeeding{}, nil
	}
	return nil, fmt.Errorf("unknown seeding policy %q", name)
}

// RankedSeeding takes the eight best-rated teams and pairs best against
// worst (1v8, 2v7, 3v6, 4v5). Later rounds fold the same way, so the top two
// seeds can only meet in the final.
type RankedSeeding struct{}

func (RankedSeeding) Name() string { return SeedingRanked }

func (RankedSeeding) Seed(_ Rand, teams []models.Team) []models.Pairing {
	ranked := slices.Clone(teams)
	slices.SortStableFunc(ranked, func(a, b models.Team) int {
		if c := cmp.Compare(b.Strength(), a.Strength()); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})
	return fold(ranked[:BracketSize])
}

func (RankedSeeding) Advance(winners []models.Team) ([]models.Pairing, error) {
	if err := checkWinners(winners); err != nil {
		return nil, err
	}
	return fold(winners), nil
}

// ShuffleSeeding draws eight teams at random and pairs neighbours
// (1v2, 3v4, ...). Winners keep meeting their neighbours.
type ShuffleSeeding struct{}

func (ShuffleSeeding) Name() string { return SeedingShuffle }

func (ShuffleSeeding) Seed(rng Rand, teams []models.Team) []models.Pairing {
	shuffled := slices.Clone(teams)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return adjacent(shuffled[:BracketSize])
}

func (ShuffleSeeding) Advance(winners []models.Team) ([]models.Pairing, error) {
	if err := checkWinners(winners); err != nil {
		return nil, err
	}
	return adjacent(winners), nil
}

func fold(teams []models.Team) []models.Pairing {
	n := len(teams)
	pairs := make([]models.Pairing, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, models.Pairing{A: teams[i], B: teams[n-1-i]})
	}
	return pairs
}

func adjacent(teams []models.Team) []models.Pairing {
	pairs := make([]models.Pairing, 0, len(teams)/2)
	for i := 0; i+1 < len(teams); i += 2 {
		pairs = append(pairs, models.Pairing{A: teams[i], B: teams[i+1]})
	}
	return pairs
}

// checkWinners guards the next round against a missing or odd winner list.
func checkWinners(winners []models.Team) error {
	if len(winners) < 2 || len(winners)%2 != 0 {
		return fmt.Errorf("%w: cannot pair %d winners", ErrMissingBracketSlot, len(winners))
	}
	for i, w := range winners {
		if strings.TrimSpace(w.Country) == "" {
			return fmt.Errorf("%w: winner %d is empty", ErrMissingBracketSlot, i+1)
		}
	}
	return nil
}
