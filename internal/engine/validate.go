package engine

import (
	"strings"

	"github.com/knockout-cup/cup-api/internal/models"
)

// BracketSize is the number of teams entering the quarter-finals.
const BracketSize = 8

// ValidateTeams splits teams into usable entrants and rejected records.
// A usable team has a non-blank country that has not been seen before and a
// positive rating. Input order is preserved.
func ValidateTeams(teams []models.Team) ([]models.Team, []error) {
	valid := make([]models.Team, 0, len(teams))
	var rejected []error
	seen := make(map[string]bool, len(teams))

	for i, t := range teams {
		country := strings.TrimSpace(t.Country)
		reject := func(reason string) {
			rejected = append(rejected, &InvalidTeamError{Index: i, ID: t.ID, Country: country, Reason: reason})
		}
		switch {
		case country == "":
			reject("missing country")
		case t.Rating == nil:
			reject("missing rating")
		case *t.Rating <= 0:
			reject("rating must be positive")
		case seen[strings.ToLower(country)]:
			reject("duplicate country")
		default:
			seen[strings.ToLower(country)] = true
			t.Country = country
			valid = append(valid, t)
		}
	}
	return valid, rejected
}
