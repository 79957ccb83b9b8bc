package logic

import (
	"context"

	"github.com/knockout-cup/cup-api/internal/engine"
	"github.com/knockout-cup/cup-api/internal/models"
)

// TournamentService runs tournaments and reads back their results.
type TournamentService interface {
	Run(ctx context.Context) (*models.TournamentOutcome, error)
	Bracket(ctx context.Context) (*models.Bracket, error)
	Match(ctx context.Context, stage models.Stage, slot int) (*models.MatchResult, error)
	History(ctx context.Context, limit int) ([]models.TournamentResult, error)
}

// TeamService manages the entrant list.
type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	Register(ctx context.Context, req models.RegisterTeamRequest) (*models.Team, error)
	Backfill(ctx context.Context) (*models.BackfillResult, error)
	Delete(ctx context.Context, id string) error
}

// AnalyticsService serves the scorer leaderboard, team ratings and
// archived goal stats.
type AnalyticsService interface {
	TopScorers(ctx context.Context, limit int) ([]models.ScorerTally, error)
	TeamAnalytics(ctx context.Context) (*models.TeamAnalytics, error)
	GoalAnalytics(ctx context.Context) (*models.GoalAnalytics, error)
}

// TeamRepository is the persistent team table.
type TeamRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	CreateTeam(ctx context.Context, t models.Team) (models.Team, error)
	UpdateRoster(ctx context.Context, id string, players []models.Player, rating int) error
	DeleteTeam(ctx context.Context, id string) error
}

// TeamLister reads the entrant list.
type TeamLister interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
}

// ResultsReader reads persisted bracket slots and championship records.
type ResultsReader interface {
	ListStage(ctx context.Context, stage models.Stage) ([]models.MatchResult, error)
	ListHistory(ctx context.Context, limit int) ([]models.TournamentResult, error)
}

// RunLocker guards against two processes running a tournament at once.
type RunLocker interface {
	AcquireRunLock(ctx context.Context) (func(context.Context) error, error)
}

// ScorerBoard is the cumulative top-scorer table.
type ScorerBoard interface {
	TopScorers(ctx context.Context, limit int) ([]models.ScorerTally, error)
}

// Runner plays one tournament over the stored teams.
type Runner interface {
	RunFromStore(ctx context.Context) (*engine.Outcome, error)
}

// Notifier announces a finished tournament.
type Notifier interface {
	AnnounceChampion(ctx context.Context, result models.TournamentResult, final models.MatchResult) error
}
