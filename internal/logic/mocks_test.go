package logic

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/knockout-cup/cup-api/internal/engine"
	"github.com/knockout-cup/cup-api/internal/models"
)

type MockRunner struct {
	mu      sync.Mutex
	Calls   int
	RunFunc func(ctx context.Context) (*engine.Outcome, error)
}

func (m *MockRunner) RunFromStore(ctx context.Context) (*engine.Outcome, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	return m.RunFunc(ctx)
}

type MockResultsReader struct {
	ListStageFunc   func(ctx context.Context, stage models.Stage) ([]models.MatchResult, error)
	ListHistoryFunc func(ctx context.Context, limit int) ([]models.TournamentResult, error)
}

func (m *MockResultsReader) ListStage(ctx context.Context, stage models.Stage) ([]models.MatchResult, error) {
	return m.ListStageFunc(ctx, stage)
}

func (m *MockResultsReader) ListHistory(ctx context.Context, limit int) ([]models.TournamentResult, error) {
	return m.ListHistoryFunc(ctx, limit)
}

var errLocked = errors.New("locked")

type MockRunLocker struct {
	mu       sync.Mutex
	held     bool
	Released int
}

func (m *MockRunLocker) AcquireRunLock(ctx context.Context) (func(context.Context) error, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		return nil, errLocked
	}
	m.held = true
	return func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.held = false
		m.Released++
		return nil
	}, nil
}

type MockNotifier struct {
	Results []models.TournamentResult
	Finals  []models.MatchResult
	Err     error
}

func (m *MockNotifier) AnnounceChampion(ctx context.Context, result models.TournamentResult, final models.MatchResult) error {
	m.Results = append(m.Results, result)
	m.Finals = append(m.Finals, final)
	return m.Err
}

type MockTeamRepository struct {
	Teams   []models.Team
	Created []models.Team
	Deleted []string
	Rosters map[string][]models.Player
	Ratings map[string]int

	CreateFunc func(ctx context.Context, t models.Team) (models.Team, error)
	ListErr    error
	UpdateErr  error
	DeleteErr  error
}

func (m *MockTeamRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Teams, nil
}

func (m *MockTeamRepository) CreateTeam(ctx context.Context, t models.Team) (models.Team, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	t.ID = "id-" + t.Country
	m.Created = append(m.Created, t)
	return t, nil
}

func (m *MockTeamRepository) UpdateRoster(ctx context.Context, id string, players []models.Player, rating int) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.Rosters == nil {
		m.Rosters = map[string][]models.Player{}
		m.Ratings = map[string]int{}
	}
	m.Rosters[id] = players
	m.Ratings[id] = rating
	return nil
}

func (m *MockTeamRepository) DeleteTeam(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

type MockScorerBoard struct {
	Rows []models.ScorerTally
}

func (m *MockScorerBoard) TopScorers(ctx context.Context, limit int) ([]models.ScorerTally, error) {
	if limit < len(m.Rows) {
		return m.Rows[:limit], nil
	}
	return m.Rows, nil
}

// MockConn answers ClickHouse queries with canned rows in call order.
type MockConn struct {
	driver.Conn
	Results  [][][]interface{}
	QueryErr error
	calls    int
}

func (m *MockConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	var data [][]interface{}
	if m.calls < len(m.Results) {
		data = m.Results[m.calls]
	}
	m.calls++
	return &MockRows{data: data}, nil
}

type MockRows struct {
	driver.Rows
	data [][]interface{}
	curr int
}

func (m *MockRows) Next() bool {
	m.curr++
	return m.curr <= len(m.data)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	for i, v := range m.data[m.curr-1] {
		assign(dest[i], v)
	}
	return nil
}

func (m *MockRows) Close() error { return nil }
func (m *MockRows) Err() error   { return nil }

func assign(dest, val interface{}) {
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(val))
}
