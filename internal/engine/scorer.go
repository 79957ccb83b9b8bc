package engine

import (
	"fmt"
	"strings"

	"github.com/knockout-cup/cup-api/internal/models"
)

// scorerPriority orders the position buckets a scorer is drawn from.
var scorerPriority = []models.Position{
	models.PositionAttacker,
	models.PositionMidfielder,
	models.PositionDefender,
	models.PositionGoalkeeper,
}

// PickScorer returns the name of a plausible goal scorer for team. Rostered
// teams draw uniformly from the named players of the highest-priority
// non-empty position bucket; teams with no named player get a synthetic
// "<country> Player N" label.
func PickScorer(rng Rand, team models.Team) string {
	if team.HasRoster() {
		for _, pos := range scorerPriority {
			var bucket []string
			for _, p := range team.Players {
				name := strings.TrimSpace(p.Name)
				if p.Position == pos && name != "" {
					bucket = append(bucket, name)
				}
			}
			if len(bucket) > 0 {
				return bucket[rng.IntN(len(bucket))]
			}
		}
	}
	return syntheticScorer(rng, team.Country)
}

func syntheticScorer(rng Rand, country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		country = "Unknown"
	}
	return fmt.Sprintf("%s Player %d", country, UniformInt(rng, 1, 11))
}
