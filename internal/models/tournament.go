package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentResult is the championship record written once per run.
type TournamentResult struct {
	RunID          uuid.UUID `json:"run_id"`
	Champion       string    `json:"champion"`
	RunnerUp       string    `json:"runnerUp"`
	ChampionRating int       `json:"rating"`
	Year           int       `json:"year"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ScorerTally is one row of the cumulative top-scorer table.
type ScorerTally struct {
	Rank    int    `json:"rank"`
	Player  string `json:"player"`
	Country string `json:"country"`
	Goals   int64  `json:"goals"`
}

// GoalWindow counts goals scored inside a block of match minutes.
type GoalWindow struct {
	FromMinute int    `json:"from_minute"`
	ToMinute   int    `json:"to_minute"`
	Goals      uint64 `json:"goals"`
}

// StageGoals counts goals per bracket round.
type StageGoals struct {
	Stage   Stage   `json:"stage"`
	Matches uint64  `json:"matches"`
	Goals   uint64  `json:"goals"`
	PerGame float64 `json:"per_game"`
}

// TeamRating is one entrant's strength as the engine sees it.
type TeamRating struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	Rating  int    `json:"rating"`
}

// TeamAnalytics summarises the strength of the registered field.
type TeamAnalytics struct {
	TeamCount     int          `json:"team_count"`
	AverageRating float64      `json:"average_rating"`
	Strongest     string       `json:"strongest"`
	Ratings       []TeamRating `json:"ratings"`
}

// GoalAnalytics is the archive-backed goal breakdown.
type GoalAnalytics struct {
	Windows []GoalWindow `json:"windows"`
	Stages  []StageGoals `json:"stages"`
}
