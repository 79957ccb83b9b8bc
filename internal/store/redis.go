package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Redis keys and channels
const (
	ScorersKey    = "cup:scorers"
	RunLockKey    = "cup:run-lock"
	EventsChannel = "cup:events"

	memberSep = "::"
)

// ErrRunInProgress is returned when another tournament run holds the lock.
var ErrRunInProgress = errors.New("tournament run already in progress")

// releaseScript deletes the lock only if we still own it.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisClient defines the subset of the Redis client the store uses
type RedisClient interface {
	ZIncrBy(ctx context.Context, key string, increment float64, member string) *redis.FloatCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Redis keeps the cumulative scorer leaderboard, the run lock and the live
// event channel.
type Redis struct {
	client  RedisClient
	lockTTL time.Duration
	logger  *zap.SugaredLogger
}

// DefaultRunLockTTL applies when NewRedis is given no TTL. It exceeds the
// API's default request timeout.
const DefaultRunLockTTL = 2 * time.Minute

func NewRedis(client RedisClient, lockTTL time.Duration, logger *zap.Logger) *Redis {
	if lockTTL <= 0 {
		lockTTL = DefaultRunLockTTL
	}
	return &Redis{client: client, lockTTL: lockTTL, logger: logger.Sugar()}
}

// IncrementScorerTally adds one goal to country/player.
func (s *Redis) IncrementScorerTally(ctx context.Context, country, player string) error {
	if err := s.client.ZIncrBy(ctx, ScorersKey, 1, country+memberSep+player).Err(); err != nil {
		return fmt.Errorf("increment scorer tally: %w", err)
	}
	return nil
}

// TopScorers returns the leaderboard, most goals first.
func (s *Redis) TopScorers(ctx context.Context, limit int) ([]models.ScorerTally, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, ScorersKey, 0, int64(limit-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("read scorer leaderboard: %w", err)
	}

	list := make([]models.ScorerTally, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		country, player, ok := strings.Cut(member, memberSep)
		if !ok {
			player = member
		}
		list = append(list, models.ScorerTally{
			Rank:    i + 1,
			Player:  player,
			Country: country,
			Goals:   int64(z.Score),
		})
	}
	return list, nil
}

// AcquireRunLock takes the cross-process run lock. The returned release
// func drops the lock only if this holder still owns it.
func (s *Redis) AcquireRunLock(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, RunLockKey, token, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func(ctx context.Context) error {
		return s.client.Eval(ctx, releaseScript, []string{RunLockKey}, token).Err()
	}, nil
}

// PublishEvent pushes a JSON payload to the live event channel.
func (s *Redis) PublishEvent(ctx context.Context, kind string, payload any) error {
	msg, err := json.Marshal(map[string]any{"type": kind, "data": payload})
	if err != nil {
		return err
	}
	if err := s.client.Publish(ctx, EventsChannel, msg).Err(); err != nil {
		s.logger.Warnw("Failed to publish event", "type", kind, "error", err)
		return err
	}
	return nil
}
