package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/knockout-cup/cup-api/internal/models"
)

type MockTournamentService struct {
	RunFunc     func(ctx context.Context) (*models.TournamentOutcome, error)
	BracketFunc func(ctx context.Context) (*models.Bracket, error)
	MatchFunc   func(ctx context.Context, stage models.Stage, slot int) (*models.MatchResult, error)
	HistoryFunc func(ctx context.Context, limit int) ([]models.TournamentResult, error)
}

func (m *MockTournamentService) Run(ctx context.Context) (*models.TournamentOutcome, error) {
	return m.RunFunc(ctx)
}

func (m *MockTournamentService) Bracket(ctx context.Context) (*models.Bracket, error) {
	return m.BracketFunc(ctx)
}

func (m *MockTournamentService) Match(ctx context.Context, stage models.Stage, slot int) (*models.MatchResult, error) {
	return m.MatchFunc(ctx, stage, slot)
}

func (m *MockTournamentService) History(ctx context.Context, limit int) ([]models.TournamentResult, error) {
	return m.HistoryFunc(ctx, limit)
}

type MockTeamService struct {
	ListFunc     func(ctx context.Context) ([]models.Team, error)
	RegisterFunc func(ctx context.Context, req models.RegisterTeamRequest) (*models.Team, error)
	BackfillFunc func(ctx context.Context) (*models.BackfillResult, error)
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *MockTeamService) List(ctx context.Context) ([]models.Team, error) {
	return m.ListFunc(ctx)
}

func (m *MockTeamService) Register(ctx context.Context, req models.RegisterTeamRequest) (*models.Team, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *MockTeamService) Backfill(ctx context.Context) (*models.BackfillResult, error) {
	return m.BackfillFunc(ctx)
}

func (m *MockTeamService) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type MockAnalyticsService struct {
	TopScorersFunc    func(ctx context.Context, limit int) ([]models.ScorerTally, error)
	TeamAnalyticsFunc func(ctx context.Context) (*models.TeamAnalytics, error)
	GoalAnalyticsFunc func(ctx context.Context) (*models.GoalAnalytics, error)
}

func (m *MockAnalyticsService) TopScorers(ctx context.Context, limit int) ([]models.ScorerTally, error) {
	return m.TopScorersFunc(ctx, limit)
}

func (m *MockAnalyticsService) TeamAnalytics(ctx context.Context) (*models.TeamAnalytics, error) {
	return m.TeamAnalyticsFunc(ctx)
}

func (m *MockAnalyticsService) GoalAnalytics(ctx context.Context) (*models.GoalAnalytics, error) {
	return m.GoalAnalyticsFunc(ctx)
}

type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

type MockRedisPinger struct {
	Err error
}

func (m *MockRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.Err)
}

type MockArchive struct{ Depth int }

func (m *MockArchive) QueueDepth() int { return m.Depth }
