package models

// RegisterTeamRequest is the body of POST /teams.
type RegisterTeamRequest struct {
	Country string `json:"country" validate:"required,min=2,max=64"`
	Manager string `json:"manager" validate:"max=64"`
	Captain string `json:"captain,omitempty" validate:"max=64"`
}

// TournamentOutcome is returned after a completed run.
type TournamentOutcome struct {
	RunID    string        `json:"run_id"`
	Champion Team          `json:"champion"`
	RunnerUp Team          `json:"runnerUp"`
	Matches  []MatchResult `json:"matches"`
}

// BackfillResult reports how many teams received a generated squad.
type BackfillResult struct {
	Updated int `json:"updated"`
}
