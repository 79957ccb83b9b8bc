package engine

import (
	"math"
	"slices"
	"strings"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Squad shape: 3 GK, 8 DF, 8 MD, 4 AT.
var squadShape = []struct {
	pos   models.Position
	count int
}{
	{models.PositionGoalkeeper, 3},
	{models.PositionDefender, 8},
	{models.PositionMidfielder, 8},
	{models.PositionAttacker, 4},
}

var namePools = map[models.Position][]string{
	models.PositionGoalkeeper: {
		"A. Kamara", "J. Mensah", "D. Ahmed", "M. Okoye", "S. Ndidi", "B. Traore",
	},
	models.PositionDefender: {
		"K. Koulibaly", "A. Gabr", "O. Aguerd", "S. Hlatshwayo", "T. Tomori", "M. Mendy",
		"L. Jallow", "K. Rahman", "H. Aina", "B. Bensebaini", "M. Hegazi", "S. Sanusi",
	},
	models.PositionMidfielder: {
		"T. Partey", "N. Keita", "Y. Bissouma", "H. Fofana", "A. Onana", "I. Sangare",
		"M. Elneny", "H. Fathi", "Z. Jaziri", "W. Ndidi", "R. Mahrez", "H. Ziyech",
	},
	models.PositionAttacker: {
		"M. Salah", "S. Mane", "V. Osimhen", "P. Aubameyang", "R. Ihenacho", "Y. En-Nesyri",
		"B. Dia", "T. Moffi", "T. Tavares", "A. Lookman",
	},
}

// ratingWindow is the inclusive [lo, hi] skill range for one position.
type ratingWindow [2]int

// ratingWindows gives, per primary position, the skill window at each position.
var ratingWindows = map[models.Position]map[models.Position]ratingWindow{
	models.PositionGoalkeeper: {
		models.PositionGoalkeeper: {70, 92}, models.PositionDefender: {20, 45},
		models.PositionMidfielder: {15, 35}, models.PositionAttacker: {10, 25},
	},
	models.PositionDefender: {
		models.PositionGoalkeeper: {10, 25}, models.PositionDefender: {68, 90},
		models.PositionMidfielder: {45, 70}, models.PositionAttacker: {20, 45},
	},
	models.PositionMidfielder: {
		models.PositionGoalkeeper: {10, 25}, models.PositionDefender: {45, 70},
		models.PositionMidfielder: {68, 90}, models.PositionAttacker: {45, 72},
	},
	models.PositionAttacker: {
		models.PositionGoalkeeper: {10, 25}, models.PositionDefender: {20, 45},
		models.PositionMidfielder: {50, 72}, models.PositionAttacker: {70, 93},
	},
}

// Team rating bounds applied by CalculateTeamRating.
const (
	MinTeamRating   = 50
	MaxTeamRating   = 95
	EmptySquadScore = 60
)

// GenerateSquad builds a 23-player squad with position-shaped ratings and
// exactly one captain. If captain names a generated player that player wears
// the armband, otherwise the first attacker does.
func GenerateSquad(rng Rand, captain string) []models.Player {
	players := make([]models.Player, 0, 23)
	for _, slot := range squadShape {
		for _, name := range pickNames(rng, namePools[slot.pos], slot.count) {
			players = append(players, models.Player{
				Name:     name,
				Position: slot.pos,
				Rating:   positionRatings(rng, slot.pos),
			})
		}
	}

	idx := -1
	if captain = strings.TrimSpace(captain); captain != "" {
		idx = slices.IndexFunc(players, func(p models.Player) bool { return strings.EqualFold(p.Name, captain) })
	}
	if idx < 0 {
		idx = slices.IndexFunc(players, func(p models.Player) bool { return p.Position == models.PositionAttacker })
	}
	if idx < 0 {
		idx = 0
	}
	players[idx].IsCaptain = true
	return players
}

// CalculateTeamRating averages each player's rating at their primary
// position, rounds, and clamps to [MinTeamRating, MaxTeamRating]. An empty
// squad rates EmptySquadScore. The result does not depend on player order.
func CalculateTeamRating(players []models.Player) int {
	if len(players) == 0 {
		return EmptySquadScore
	}
	total := 0
	for _, p := range players {
		total += p.Rating[p.Position]
	}
	avg := int(math.Round(float64(total) / float64(len(players))))
	return clamp(avg, MinTeamRating, MaxTeamRating)
}

// pickNames draws n names without replacement, recycling the pool if it runs dry.
func pickNames(rng Rand, pool []string, n int) []string {
	out := make([]string, 0, n)
	var bag []string
	for len(out) < n {
		if len(bag) == 0 {
			bag = slices.Clone(pool)
			rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		}
		out = append(out, bag[0])
		bag = bag[1:]
	}
	return out
}

func positionRatings(rng Rand, primary models.Position) map[models.Position]int {
	windows := ratingWindows[primary]
	ratings := make(map[models.Position]int, len(windows))
	for _, pos := range models.Positions {
		w := windows[pos]
		ratings[pos] = UniformInt(rng, w[0], w[1])
	}
	return ratings
}
