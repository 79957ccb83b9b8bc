package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/knockout-cup/cup-api/internal/models"
)

// ErrMatchNotFound is returned when no stored result fills a bracket slot.
var ErrMatchNotFound = errors.New("match not found")

type tournamentService struct {
	mu       sync.Mutex
	runner   Runner
	results  ResultsReader
	lock     RunLocker
	notifier Notifier
	logger   *zap.SugaredLogger
}

// NewTournamentService wires the run path. lock and notifier may be nil.
func NewTournamentService(runner Runner, results ResultsReader, lock RunLocker, notifier Notifier, logger *zap.Logger) TournamentService {
	return &tournamentService{
		runner:   runner,
		results:  results,
		lock:     lock,
		notifier: notifier,
		logger:   logger.Sugar(),
	}
}

// Run plays a full tournament. Runs are serialised in-process by a mutex
// and across processes by the Redis run lock.
func (s *tournamentService) Run(ctx context.Context) (*models.TournamentOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock != nil {
		release, err := s.lock.AcquireRunLock(ctx)
		if err != nil {
			return nil, err
		}
		defer func() {
			// release even when the request context is gone
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warnw("Failed to release run lock", "error", err)
			}
		}()
	}

	out, err := s.runner.RunFromStore(ctx)
	if err != nil {
		return nil, err
	}

	matches := out.Matches()
	if s.notifier != nil && len(matches) > 0 {
		final := matches[len(matches)-1]
		if err := s.notifier.AnnounceChampion(ctx, out.History, final); err != nil {
			s.logger.Warnw("Champion announcement failed", "run", out.RunID, "error", err)
		}
	}

	return &models.TournamentOutcome{
		RunID:    out.RunID.String(),
		Champion: out.Champion,
		RunnerUp: out.RunnerUp,
		Matches:  matches,
	}, nil
}

// Bracket reads the three stages concurrently.
func (s *tournamentService) Bracket(ctx context.Context) (*models.Bracket, error) {
	b := &models.Bracket{}
	targets := map[models.Stage]*[]models.MatchResult{
		models.StageQuarterFinals: &b.QuarterFinals,
		models.StageSemiFinals:    &b.SemiFinals,
		models.StageFinal:         &b.Final,
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, stage := range models.Stages {
		dst := targets[stage]
		g.Go(func() error {
			list, err := s.results.ListStage(ctx, stage)
			if err != nil {
				return fmt.Errorf("%s: %w", stage, err)
			}
			*dst = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}

// Match returns the stored result in one bracket slot.
func (s *tournamentService) Match(ctx context.Context, stage models.Stage, slot int) (*models.MatchResult, error) {
	if !stage.Valid() || slot < 1 {
		return nil, fmt.Errorf("%w: %s slot %d", ErrMatchNotFound, stage, slot)
	}
	list, err := s.results.ListStage(ctx, stage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}
	for i := range list {
		if list[i].Slot == slot {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s slot %d", ErrMatchNotFound, stage, slot)
}

func (s *tournamentService) History(ctx context.Context, limit int) ([]models.TournamentResult, error) {
	return s.results.ListHistory(ctx, limit)
}
