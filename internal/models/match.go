package models

import (
	"time"

	"github.com/google/uuid"
)

// Stage is one round of the knockout bracket. The values double as
// persisted collection names.
type Stage string

const (
	StageQuarterFinals Stage = "quarterFinals"
	StageSemiFinals    Stage = "semiFinals"
	StageFinal         Stage = "final"
)

// Stages lists the bracket rounds in play order.
var Stages = []Stage{StageQuarterFinals, StageSemiFinals, StageFinal}

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	switch s {
	case StageQuarterFinals, StageSemiFinals, StageFinal:
		return true
	}
	return false
}

// Pairing is the two sides of a single fixture. A is listed first in the
// persisted match record.
type Pairing struct {
	A Team
	B Team
}

// ScorerEvent is a single goal.
type ScorerEvent struct {
	Team   string `json:"team"`
	Player string `json:"player"`
	Minute int    `json:"minute"`
}

// MatchResult is the resolved outcome of one pairing. Scorers is the merged
// chronological list; ScorersA/ScorersB are the per-side views.
type MatchResult struct {
	ID        uuid.UUID     `json:"id"`
	RunID     uuid.UUID     `json:"run_id"`
	Stage     Stage         `json:"stage"`
	Slot      int           `json:"slot"`
	TeamA     string        `json:"teamA"`
	TeamB     string        `json:"teamB"`
	ScoreA    int           `json:"scoreA"`
	ScoreB    int           `json:"scoreB"`
	Scorers   []ScorerEvent `json:"scorers"`
	ScorersA  []ScorerEvent `json:"scorersA"`
	ScorersB  []ScorerEvent `json:"scorersB"`
	Winner    string        `json:"winner"`
	TieBreak  bool          `json:"tie_break"`
	Simulated bool          `json:"simulated"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Loser returns the country that did not win the match.
func (m MatchResult) Loser() string {
	if m.Winner == m.TeamA {
		return m.TeamB
	}
	return m.TeamA
}

// GoalEvent is the archived, denormalised form of a ScorerEvent
type GoalEvent struct {
	RunID     uuid.UUID
	MatchID   uuid.UUID
	Stage     Stage
	Slot      int
	Team      string
	Opponent  string
	Player    string
	Minute    int
	Timestamp time.Time
}

// Bracket is the persisted state of every stage.
type Bracket struct {
	QuarterFinals []MatchResult `json:"quarterFinals"`
	SemiFinals    []MatchResult `json:"semiFinals"`
	Final         []MatchResult `json:"final"`
}
