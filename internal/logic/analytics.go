package logic

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/knockout-cup/cup-api/internal/models"
)

// goalWindowMinutes is the width of one goal-timing bucket
const goalWindowMinutes = 15

type analyticsService struct {
	teams   TeamLister
	scorers ScorerBoard
	ch      driver.Conn
}

// NewAnalyticsService builds an AnalyticsService. ch may be nil when the
// goal archive is not configured.
func NewAnalyticsService(teams TeamLister, scorers ScorerBoard, ch driver.Conn) AnalyticsService {
	return &analyticsService{teams: teams, scorers: scorers, ch: ch}
}

func (s *analyticsService) TopScorers(ctx context.Context, limit int) ([]models.ScorerTally, error) {
	return s.scorers.TopScorers(ctx, limit)
}

// TeamAnalytics ranks the registered field by strength. Unrated teams count
// at the default strength; ties go to the alphabetically first country.
func (s *analyticsService) TeamAnalytics(ctx context.Context) (*models.TeamAnalytics, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := &models.TeamAnalytics{Ratings: make([]models.TeamRating, 0, len(teams))}
	sum := 0
	for _, t := range teams {
		r := t.Strength()
		sum += r
		out.Ratings = append(out.Ratings, models.TeamRating{ID: t.ID, Country: t.Country, Rating: r})
	}
	slices.SortFunc(out.Ratings, func(a, b models.TeamRating) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})

	out.TeamCount = len(out.Ratings)
	if out.TeamCount > 0 {
		out.AverageRating = math.Round(float64(sum)/float64(out.TeamCount)*10) / 10
		out.Strongest = out.Ratings[0].Country
	}
	return out, nil
}

// GoalAnalytics breaks archived goals down by match minute and by stage.
func (s *analyticsService) GoalAnalytics(ctx context.Context) (*models.GoalAnalytics, error) {
	out := &models.GoalAnalytics{
		Windows: []models.GoalWindow{},
		Stages:  []models.StageGoals{},
	}
	if s.ch == nil {
		return out, nil
	}

	windows, err := s.goalWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("goal windows: %w", err)
	}
	out.Windows = windows

	stages, err := s.stageGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("stage goals: %w", err)
	}
	out.Stages = stages
	return out, nil
}

func (s *analyticsService) goalWindows(ctx context.Context) ([]models.GoalWindow, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT
			toUInt8(intDiv(minute - 1, 15)) AS bucket,
			count() AS goals
		FROM cup_stats.goal_events
		WHERE minute BETWEEN 1 AND 90
		GROUP BY bucket
		ORDER BY bucket
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	n := 90 / goalWindowMinutes
	windows := make([]models.GoalWindow, n)
	for i := range windows {
		windows[i] = models.GoalWindow{
			FromMinute: i*goalWindowMinutes + 1,
			ToMinute:   (i + 1) * goalWindowMinutes,
		}
	}
	for rows.Next() {
		var bucket uint8
		var goals uint64
		if err := rows.Scan(&bucket, &goals); err != nil {
			return nil, err
		}
		if int(bucket) < n {
			windows[bucket].Goals = goals
		}
	}
	return windows, rows.Err()
}

// stageGoals counts only matches that produced at least one goal, since the
// archive holds goals rather than fixtures.
func (s *analyticsService) stageGoals(ctx context.Context) ([]models.StageGoals, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT
			stage,
			uniqExact(match_id) AS matches,
			count() AS goals
		FROM cup_stats.goal_events
		GROUP BY stage
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byStage := map[models.Stage]models.StageGoals{}
	for rows.Next() {
		var (
			stage          string
			matches, goals uint64
		)
		if err := rows.Scan(&stage, &matches, &goals); err != nil {
			return nil, err
		}
		sg := models.StageGoals{Stage: models.Stage(stage), Matches: matches, Goals: goals}
		if matches > 0 {
			sg.PerGame = float64(goals) / float64(matches)
		}
		byStage[sg.Stage] = sg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	list := make([]models.StageGoals, 0, len(byStage))
	for _, stage := range models.Stages {
		if sg, ok := byStage[stage]; ok {
			list = append(list, sg)
		}
	}
	return list, nil
}
