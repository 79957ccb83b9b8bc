package logic

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/engine"
	"github.com/knockout-cup/cup-api/internal/models"
)

type teamService struct {
	repo   TeamRepository
	logger *zap.SugaredLogger

	// rng is not safe for concurrent use
	mu  sync.Mutex
	rng engine.Rand
}

// NewTeamService builds a TeamService that generates squads from rng.
func NewTeamService(repo TeamRepository, rng engine.Rand, logger *zap.Logger) TeamService {
	if rng == nil {
		rng = engine.NewRand(0)
	}
	return &teamService{repo: repo, rng: rng, logger: logger.Sugar()}
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

// Register stores a new team with a generated squad and the rating derived
// from it.
func (s *teamService) Register(ctx context.Context, req models.RegisterTeamRequest) (*models.Team, error) {
	country := strings.TrimSpace(req.Country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", engine.ErrInvalidTeamData)
	}

	players := s.squad(req.Captain)
	rating := engine.CalculateTeamRating(players)
	team, err := s.repo.CreateTeam(ctx, models.Team{
		Country: country,
		Manager: strings.TrimSpace(req.Manager),
		Rating:  models.IntPtr(rating),
		Players: players,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Team registered", "team", team.Country, "rating", rating)
	return &team, nil
}

// Backfill gives every team without a roster a generated squad and
// recomputes its rating.
func (s *teamService) Backfill(ctx context.Context) (*models.BackfillResult, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	res := &models.BackfillResult{}
	for _, t := range teams {
		if t.HasRoster() {
			continue
		}
		players := s.squad("")
		rating := engine.CalculateTeamRating(players)
		if err := s.repo.UpdateRoster(ctx, t.ID, players, rating); err != nil {
			return res, fmt.Errorf("backfill %s: %w", t.Country, err)
		}
		res.Updated++
	}

	s.logger.Infow("Roster backfill complete", "updated", res.Updated, "teams", len(teams))
	return res, nil
}

// Delete withdraws a team from future tournaments.
func (s *teamService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: team id is required", engine.ErrInvalidTeamData)
	}
	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Team withdrawn", "id", id)
	return nil
}

func (s *teamService) squad(captain string) []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.GenerateSquad(s.rng, strings.TrimSpace(captain))
}
