package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/knockout-cup/cup-api/internal/models"
)

// MockResultsStore records every write. WriteMatchFunc / WriteHistoryFunc
// can inject failures.
type MockResultsStore struct {
	mu               sync.Mutex
	Matches          map[string]models.MatchResult
	History          []models.TournamentResult
	Tallies          map[string]int
	WriteMatchFunc   func(stage models.Stage, slot int, result models.MatchResult) error
	WriteHistoryFunc func(result models.TournamentResult) error
}

func NewMockResultsStore() *MockResultsStore {
	return &MockResultsStore{
		Matches: make(map[string]models.MatchResult),
		Tallies: make(map[string]int),
	}
}

func slotKey(stage models.Stage, slot int) string {
	return fmt.Sprintf("%s/match%d", stage, slot)
}

func (m *MockResultsStore) WriteMatch(ctx context.Context, stage models.Stage, slot int, result models.MatchResult) error {
	if m.WriteMatchFunc != nil {
		if err := m.WriteMatchFunc(stage, slot, result); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Matches[slotKey(stage, slot)] = result
	return nil
}

func (m *MockResultsStore) WriteTournamentHistory(ctx context.Context, result models.TournamentResult) error {
	if m.WriteHistoryFunc != nil {
		if err := m.WriteHistoryFunc(result); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.History = append(m.History, result)
	return nil
}

func (m *MockResultsStore) IncrementScorerTally(ctx context.Context, country, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tallies[country+"::"+player]++
	return nil
}

func (m *MockResultsStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Matches) + len(m.History)
}

func (m *MockResultsStore) TotalTallied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.Tallies {
		n += v
	}
	return n
}

// MockTeamStore serves a fixed team list.
type MockTeamStore struct {
	Teams []models.Team
	Err   error
}

func (m *MockTeamStore) ListTeams(ctx context.Context) ([]models.Team, error) {
	return m.Teams, m.Err
}

// makeTeams builds teams named Team1..TeamN with the given ratings.
func makeTeams(ratings ...int) []models.Team {
	teams := make([]models.Team, 0, len(ratings))
	for i, r := range ratings {
		teams = append(teams, models.Team{
			ID:      fmt.Sprintf("id-%d", i+1),
			Country: fmt.Sprintf("Team%d", i+1),
			Rating:  models.IntPtr(r),
		})
	}
	return teams
}
