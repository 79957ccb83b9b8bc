package engine

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

func newTestEngine(results ResultsStore, seed uint64, seeding SeedingPolicy) *Engine {
	return New(Config{
		Results: results,
		Rand:    NewRand(seed),
		Seeding: seeding,
		Params:  DefaultParams(),
		Logger:  zap.NewNop(),
	})
}

func TestRun_WritesSevenMatchesAndOneHistory(t *testing.T) {
	for _, policy := range []SeedingPolicy{RankedSeeding{}, ShuffleSeeding{}} {
		t.Run(policy.Name(), func(t *testing.T) {
			store := NewMockResultsStore()
			e := newTestEngine(store, 101, policy)

			out, err := e.Run(context.Background(), makeTeams(90, 85, 80, 75, 70, 65, 60, 55))
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if len(store.Matches) != 7 {
				t.Errorf("persisted %d matches, want 7", len(store.Matches))
			}
			for _, key := range []string{
				"quarterFinals/match1", "quarterFinals/match2", "quarterFinals/match3", "quarterFinals/match4",
				"semiFinals/match1", "semiFinals/match2", "final/match1",
			} {
				if _, ok := store.Matches[key]; !ok {
					t.Errorf("missing %s", key)
				}
			}
			if len(store.History) != 1 {
				t.Fatalf("persisted %d history records, want 1", len(store.History))
			}

			h := store.History[0]
			if h.Champion != out.Champion.Country || h.RunnerUp != out.RunnerUp.Country {
				t.Errorf("history %s/%s, outcome %s/%s", h.Champion, h.RunnerUp, out.Champion.Country, out.RunnerUp.Country)
			}
			if h.ChampionRating != out.Champion.Strength() || h.RunID != out.RunID {
				t.Errorf("history record mismatch: %+v", h)
			}

			final := store.Matches["final/match1"]
			if final.Winner != out.Champion.Country || final.Loser() != out.RunnerUp.Country {
				t.Errorf("final %s beat %s, outcome says %s beat %s", final.Winner, final.Loser(), out.Champion.Country, out.RunnerUp.Country)
			}

			goals := 0
			for _, m := range out.Matches() {
				goals += m.ScoreA + m.ScoreB
				if m.RunID != out.RunID {
					t.Errorf("match %s/%d carries run %s", m.Stage, m.Slot, m.RunID)
				}
			}
			if got := store.TotalTallied(); got != goals {
				t.Errorf("tallied %d goals, scored %d", got, goals)
			}
		})
	}
}

func TestRun_BracketProgression(t *testing.T) {
	store := NewMockResultsStore()
	e := newTestEngine(store, 202, RankedSeeding{})
	out, err := e.Run(context.Background(), makeTeams(90, 85, 80, 75, 70, 65, 60, 55))
	if err != nil {
		t.Fatal(err)
	}

	qf, sf, final := out.Stages[0], out.Stages[1], out.Stages[2]
	if len(qf.Winners) != 4 || len(sf.Winners) != 2 || len(final.Winners) != 1 {
		t.Fatalf("winner counts %d/%d/%d", len(qf.Winners), len(sf.Winners), len(final.Winners))
	}

	// ranked bracket: W(QF1) v W(QF4), W(QF2) v W(QF3)
	sf1, sf2 := store.Matches["semiFinals/match1"], store.Matches["semiFinals/match2"]
	if sf1.TeamA != qf.Winners[0].Country || sf1.TeamB != qf.Winners[3].Country {
		t.Errorf("SF1 = %s v %s, want %s v %s", sf1.TeamA, sf1.TeamB, qf.Winners[0].Country, qf.Winners[3].Country)
	}
	if sf2.TeamA != qf.Winners[1].Country || sf2.TeamB != qf.Winners[2].Country {
		t.Errorf("SF2 = %s v %s, want %s v %s", sf2.TeamA, sf2.TeamB, qf.Winners[1].Country, qf.Winners[2].Country)
	}

	for i, m := range qf.Matches {
		if qf.Winners[i].Country != m.Winner {
			t.Errorf("QF winner %d = %s, match says %s", i+1, qf.Winners[i].Country, m.Winner)
		}
	}

	fm := store.Matches["final/match1"]
	if !slices.Contains([]string{fm.TeamA, fm.TeamB}, sf.Winners[0].Country) ||
		!slices.Contains([]string{fm.TeamA, fm.TeamB}, sf.Winners[1].Country) {
		t.Errorf("final %s v %s is not between semi-final winners", fm.TeamA, fm.TeamB)
	}
}

func TestRun_HundredRankedRuns(t *testing.T) {
	ratings := []int{90, 85, 80, 75, 70, 65, 60, 55}
	e := newTestEngine(NewMockResultsStore(), 303, RankedSeeding{})

	for i := 0; i < 100; i++ {
		out, err := e.Run(context.Background(), makeTeams(ratings...))
		if errors.Is(err, ErrInsufficientTeams) {
			t.Fatalf("run %d: unexpected ErrInsufficientTeams", i)
		}
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !slices.Contains(ratings, out.Champion.Strength()) {
			t.Fatalf("run %d: champion rating %d not an input rating", i, out.Champion.Strength())
		}
		if out.Champion.Country == out.RunnerUp.Country {
			t.Fatalf("run %d: champion and runner-up are both %s", i, out.Champion.Country)
		}
		for _, m := range out.Matches() {
			if m.ScoreA == m.ScoreB {
				t.Fatalf("run %d: draw in %s slot %d", i, m.Stage, m.Slot)
			}
		}
	}
}

func TestRun_InsufficientTeams(t *testing.T) {
	tests := []struct {
		name  string
		teams []models.Team
	}{
		{"Seven Teams", makeTeams(90, 85, 80, 75, 70, 65, 60)},
		{"Eight With One Invalid", append(makeTeams(90, 85, 80, 75, 70, 65, 60), models.Team{Country: "NoRating"})},
		{"None", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMockResultsStore()
			e := newTestEngine(store, 404, RankedSeeding{})

			_, err := e.Run(context.Background(), tt.teams)
			if !errors.Is(err, ErrInsufficientTeams) {
				t.Fatalf("error = %v, want ErrInsufficientTeams", err)
			}
			if store.Writes() != 0 || store.TotalTallied() != 0 {
				t.Errorf("store saw %d writes and %d tallies", store.Writes(), store.TotalTallied())
			}
		})
	}
}

func TestRun_InvalidTeamsFilteredOut(t *testing.T) {
	teams := append(makeTeams(90, 85, 80, 75, 70, 65, 60, 55), models.Team{ID: "x"}, models.Team{Country: "Team1", Rating: models.IntPtr(99)})
	store := NewMockResultsStore()
	out, err := newTestEngine(store, 505, RankedSeeding{}).Run(context.Background(), teams)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, m := range out.Matches() {
		if m.TeamA == "" || m.TeamB == "" {
			t.Fatalf("invalid team entered the bracket: %+v", m)
		}
	}
	if out.Champion.Strength() == 99 {
		t.Error("duplicate country entered the bracket")
	}
}

func TestRun_PersistenceFailure(t *testing.T) {
	boom := errors.New("store offline")
	store := NewMockResultsStore()
	store.WriteMatchFunc = func(stage models.Stage, slot int, _ models.MatchResult) error {
		if stage == models.StageSemiFinals && slot == 2 {
			return boom
		}
		return nil
	}

	_, err := newTestEngine(store, 606, RankedSeeding{}).Run(context.Background(), makeTeams(90, 85, 80, 75, 70, 65, 60, 55))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}

	// quarter-finals and the sibling semi-final stay written
	if len(store.Matches) != 5 {
		t.Errorf("persisted %d matches, want 5", len(store.Matches))
	}
	if _, ok := store.Matches["final/match1"]; ok {
		t.Error("final was played after a failed stage")
	}
	if len(store.History) != 0 {
		t.Error("history written after a failed stage")
	}
}

func TestRun_HistoryFailure(t *testing.T) {
	boom := errors.New("history down")
	store := NewMockResultsStore()
	store.WriteHistoryFunc = func(models.TournamentResult) error { return boom }

	_, err := newTestEngine(store, 707, RankedSeeding{}).Run(context.Background(), makeTeams(90, 85, 80, 75, 70, 65, 60, 55))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want history error", err)
	}
	if len(store.Matches) != 7 {
		t.Errorf("persisted %d matches, want 7", len(store.Matches))
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMockResultsStore()
	_, err := newTestEngine(store, 808, RankedSeeding{}).Run(ctx, makeTeams(90, 85, 80, 75, 70, 65, 60, 55))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if store.Writes() != 0 {
		t.Errorf("store saw %d writes", store.Writes())
	}
}

func TestRun_Deterministic(t *testing.T) {
	teams := makeTeams(90, 85, 80, 75, 70, 65, 60, 55)
	a, err := newTestEngine(NewMockResultsStore(), 909, ShuffleSeeding{}).Run(context.Background(), teams)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestEngine(NewMockResultsStore(), 909, ShuffleSeeding{}).Run(context.Background(), teams)
	if err != nil {
		t.Fatal(err)
	}
	ma, mb := a.Matches(), b.Matches()
	for i := range ma {
		if ma[i].TeamA != mb[i].TeamA || ma[i].TeamB != mb[i].TeamB || ma[i].ScoreA != mb[i].ScoreA || ma[i].ScoreB != mb[i].ScoreB {
			t.Fatalf("match %d differs under the same seed", i)
		}
	}
}

func TestRunFromStore(t *testing.T) {
	teamErr := errors.New("teams unavailable")
	e := New(Config{Teams: &MockTeamStore{Err: teamErr}, Results: NewMockResultsStore(), Rand: NewRand(1)})
	if _, err := e.RunFromStore(context.Background()); !errors.Is(err, teamErr) {
		t.Errorf("error = %v, want team store error", err)
	}

	e = New(Config{Teams: &MockTeamStore{Teams: makeTeams(90, 85, 80, 75, 70, 65, 60, 55)}, Results: NewMockResultsStore(), Rand: NewRand(1)})
	if _, err := e.RunFromStore(context.Background()); err != nil {
		t.Errorf("RunFromStore failed: %v", err)
	}
}
