package models

// Position is a player's primary role on the pitch.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MD"
	PositionAttacker   Position = "AT"
)

// Positions lists every position in squad order (goalkeepers first).
var Positions = []Position{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionAttacker}

// DefaultRating is used when a team reaches the simulator without a usable rating.
const DefaultRating = 70

// Player is a squad member. Ratings holds a 0-100 skill score for every position.
type Player struct {
	Name      string           `json:"name"`
	Position  Position         `json:"position"`
	Rating    map[Position]int `json:"rating"`
	IsCaptain bool             `json:"isCaptain"`
}

// Team is a registered country. Rating is nil when the stored record has none.
type Team struct {
	ID      string   `json:"id"`
	Country string   `json:"country"`
	Manager string   `json:"manager,omitempty"`
	Rating  *int     `json:"rating"`
	Players []Player `json:"players,omitempty"`
}

// Strength returns the team rating, falling back to DefaultRating when unset or non-positive.
func (t Team) Strength() int {
	if t.Rating == nil || *t.Rating <= 0 {
		return DefaultRating
	}
	return *t.Rating
}

// HasRoster reports whether the team carries at least one player.
func (t Team) HasRoster() bool {
	return len(t.Players) > 0
}

// IntPtr is a small helper for building teams in code and tests.
func IntPtr(v int) *int {
	return &v
}
