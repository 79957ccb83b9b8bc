package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientTeams means fewer than BracketSize valid teams were supplied.
	ErrInsufficientTeams = errors.New("insufficient teams")
	// ErrInvalidTeamData marks a team record that cannot enter the bracket.
	ErrInvalidTeamData = errors.New("invalid team data")
	// ErrMissingBracketSlot means a winner was absent when building the next round.
	ErrMissingBracketSlot = errors.New("missing bracket slot")
)

// InvalidTeamError describes why a single team record was rejected.
type InvalidTeamError struct {
	Index   int
	ID      string
	Country string
	Reason  string
}

func (e *InvalidTeamError) Error() string {
	who := e.Country
	if who == "" {
		who = e.ID
	}
	if who == "" {
		who = fmt.Sprintf("#%d", e.Index)
	}
	return fmt.Sprintf("%s: team %s: %s", ErrInvalidTeamData, who, e.Reason)
}

func (e *InvalidTeamError) Is(target error) bool {
	return target == ErrInvalidTeamData
}
