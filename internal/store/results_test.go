package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

func TestResults_WriteMatchArchivesGoals(t *testing.T) {
	archive := &MockArchive{}
	res := NewResults(NewPostgres(&MockPgPool{}, zap.NewNop()), NewRedis(NewMockRedisClient(), time.Second, zap.NewNop()), archive, zap.NewNop())

	m := models.MatchResult{
		ID: uuid.New(), RunID: uuid.New(), TeamA: "Egypt", TeamB: "Ghana", ScoreA: 1, ScoreB: 2, Winner: "Ghana",
		Scorers: []models.ScorerEvent{
			{Team: "Ghana", Player: "C", Minute: 5},
			{Team: "Egypt", Player: "A", Minute: 40},
			{Team: "Ghana", Player: "D", Minute: 77},
		},
	}
	if err := res.WriteMatch(context.Background(), models.StageQuarterFinals, 3, m); err != nil {
		t.Fatal(err)
	}
	if len(archive.Events) != 3 {
		t.Fatalf("archived %d goals, want 3", len(archive.Events))
	}
	first := archive.Events[0]
	if first.Team != "Ghana" || first.Opponent != "Egypt" || first.Slot != 3 || first.Stage != models.StageQuarterFinals || first.MatchID != m.ID {
		t.Errorf("first archived goal = %+v", first)
	}
	if archive.Events[1].Opponent != "Ghana" {
		t.Errorf("Egypt goal opponent = %s", archive.Events[1].Opponent)
	}
}

func TestResults_WriteMatchFailureSkipsArchive(t *testing.T) {
	boom := errors.New("pg down")
	pg := &MockPgPool{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, boom
		},
	}
	archive := &MockArchive{}
	res := NewResults(NewPostgres(pg, zap.NewNop()), NewRedis(NewMockRedisClient(), time.Second, zap.NewNop()), archive, zap.NewNop())

	err := res.WriteMatch(context.Background(), models.StageFinal, 1, models.MatchResult{Scorers: []models.ScorerEvent{{Minute: 1}}})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if len(archive.Events) != 0 {
		t.Error("goals archived for an unsaved match")
	}
}

func TestResults_HistoryPublishesChampion(t *testing.T) {
	client := NewMockRedisClient()
	res := NewResults(NewPostgres(&MockPgPool{}, zap.NewNop()), NewRedis(client, time.Second, zap.NewNop()), nil, zap.NewNop())
	if err := res.WriteTournamentHistory(context.Background(), models.TournamentResult{Champion: "Egypt", RunnerUp: "Ghana"}); err != nil {
		t.Fatal(err)
	}
	if len(client.Messages) != 1 {
		t.Errorf("published %d messages, want 1", len(client.Messages))
	}
}
