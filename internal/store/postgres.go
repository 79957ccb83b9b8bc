// Package store backs the engine's team and results stores with Postgres,
// Redis and the ClickHouse goal archive.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

// ErrDuplicateTeam is returned when a country is already registered.
var ErrDuplicateTeam = errors.New("team already registered")

// ErrTeamNotFound is returned when an update or delete targets an unknown team.
var ErrTeamNotFound = errors.New("team not found")

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres stores teams, bracket slots and tournament history.
type Postgres struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewPostgres(pg PgPool, logger *zap.Logger) *Postgres {
	return &Postgres{pg: pg, logger: logger.Sugar()}
}

// ListTeams returns every registered team ordered by country.
func (s *Postgres) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id::text, country, manager, rating, players
		FROM teams
		ORDER BY country
	`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var (
			t          models.Team
			rating     *int32
			playersRaw []byte
		)
		if err := rows.Scan(&t.ID, &t.Country, &t.Manager, &rating, &playersRaw); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		if rating != nil {
			t.Rating = models.IntPtr(int(*rating))
		}
		if len(playersRaw) > 0 {
			if err := json.Unmarshal(playersRaw, &t.Players); err != nil {
				// keep the team; the engine falls back to synthetic scorers
				s.logger.Warnw("Unreadable roster", "team", t.Country, "error", err)
				t.Players = nil
			}
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// CreateTeam inserts a team and returns it with its generated ID.
func (s *Postgres) CreateTeam(ctx context.Context, t models.Team) (models.Team, error) {
	players, err := json.Marshal(nonNilPlayers(t.Players))
	if err != nil {
		return t, err
	}
	err = s.pg.QueryRow(ctx, `
		INSERT INTO teams (country, manager, rating, players)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, t.Country, t.Manager, t.Rating, players).Scan(&t.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return t, fmt.Errorf("%w: %s", ErrDuplicateTeam, t.Country)
		}
		return t, fmt.Errorf("insert team: %w", err)
	}
	return t, nil
}

// UpdateRoster replaces a team's players and rating.
func (s *Postgres) UpdateRoster(ctx context.Context, id string, players []models.Player, rating int) error {
	raw, err := json.Marshal(nonNilPlayers(players))
	if err != nil {
		return err
	}
	tag, err := s.pg.Exec(ctx, `
		UPDATE teams SET players = $2, rating = $3, updated_at = now()
		WHERE id = $1::uuid
	`, id, raw, rating)
	if err != nil {
		return fmt.Errorf("update roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	return nil
}

// DeleteTeam removes a team from the entrant list. Past bracket slots and
// history keep their copies of the team.
func (s *Postgres) DeleteTeam(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	tag, err := s.pg.Exec(ctx, `DELETE FROM teams WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	s.logger.Infow("Team deleted", "id", id)
	return nil
}

// WriteMatch stores a result in its bracket slot, replacing whatever an
// earlier run left there.
func (s *Postgres) WriteMatch(ctx context.Context, stage models.Stage, slot int, m models.MatchResult) error {
	scorersA, err := json.Marshal(nonNilEvents(m.ScorersA))
	if err != nil {
		return err
	}
	scorersB, err := json.Marshal(nonNilEvents(m.ScorersB))
	if err != nil {
		return err
	}
	_, err = s.pg.Exec(ctx, `
		INSERT INTO matches (
			stage, slot, id, run_id, team_a, team_b, score_a, score_b,
			scorers_a, scorers_b, winner, tie_break, simulated, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (stage, slot) DO UPDATE SET
			id = EXCLUDED.id, run_id = EXCLUDED.run_id,
			team_a = EXCLUDED.team_a, team_b = EXCLUDED.team_b,
			score_a = EXCLUDED.score_a, score_b = EXCLUDED.score_b,
			scorers_a = EXCLUDED.scorers_a, scorers_b = EXCLUDED.scorers_b,
			winner = EXCLUDED.winner, tie_break = EXCLUDED.tie_break,
			simulated = EXCLUDED.simulated, created_at = EXCLUDED.created_at
	`, string(stage), slot, m.ID.String(), m.RunID.String(), m.TeamA, m.TeamB, m.ScoreA, m.ScoreB,
		scorersA, scorersB, m.Winner, m.TieBreak, m.Simulated, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert %s slot %d: %w", stage, slot, err)
	}
	return nil
}

// ListStage returns a stage's results ordered by slot.
func (s *Postgres) ListStage(ctx context.Context, stage models.Stage) ([]models.MatchResult, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id::text, run_id::text, slot, team_a, team_b, score_a, score_b,
		       scorers_a, scorers_b, winner, tie_break, simulated, created_at
		FROM matches
		WHERE stage = $1
		ORDER BY slot
	`, string(stage))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", stage, err)
	}
	defer rows.Close()

	list := []models.MatchResult{}
	for rows.Next() {
		var (
			m          models.MatchResult
			id, runID  string
			rawA, rawB []byte
		)
		if err := rows.Scan(&id, &runID, &m.Slot, &m.TeamA, &m.TeamB, &m.ScoreA, &m.ScoreB,
			&rawA, &rawB, &m.Winner, &m.TieBreak, &m.Simulated, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s match: %w", stage, err)
		}
		m.Stage = stage
		m.ID = parseUUID(id)
		m.RunID = parseUUID(runID)
		if err := json.Unmarshal(rawA, &m.ScorersA); err != nil {
			return nil, fmt.Errorf("decode scorers: %w", err)
		}
		if err := json.Unmarshal(rawB, &m.ScorersB); err != nil {
			return nil, fmt.Errorf("decode scorers: %w", err)
		}
		m.Scorers = mergeScorers(m.ScorersA, m.ScorersB)
		list = append(list, m)
	}
	return list, rows.Err()
}

// WriteTournamentHistory appends the championship record.
func (s *Postgres) WriteTournamentHistory(ctx context.Context, r models.TournamentResult) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO tournament_history (run_id, champion, runner_up, champion_rating, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.RunID.String(), r.Champion, r.RunnerUp, r.ChampionRating, r.Year, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert tournament history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent championship records first.
func (s *Postgres) ListHistory(ctx context.Context, limit int) ([]models.TournamentResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.pg.Query(ctx, `
		SELECT run_id::text, champion, runner_up, champion_rating, year, created_at
		FROM tournament_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	list := []models.TournamentResult{}
	for rows.Next() {
		var (
			r     models.TournamentResult
			runID string
		)
		if err := rows.Scan(&runID, &r.Champion, &r.RunnerUp, &r.ChampionRating, &r.Year, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		r.RunID = parseUUID(runID)
		list = append(list, r)
	}
	return list, rows.Err()
}

func mergeScorers(a, b []models.ScorerEvent) []models.ScorerEvent {
	all := make([]models.ScorerEvent, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	slices.SortStableFunc(all, func(x, y models.ScorerEvent) int { return x.Minute - y.Minute })
	return all
}

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func nonNilPlayers(p []models.Player) []models.Player {
	if p == nil {
		return []models.Player{}
	}
	return p
}

func nonNilEvents(e []models.ScorerEvent) []models.ScorerEvent {
	if e == nil {
		return []models.ScorerEvent{}
	}
	return e
}
