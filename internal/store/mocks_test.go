package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/knockout-cup/cup-api/internal/models"
)

type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// MockPgRows serves Data row by row; each value must have the exact type
// of the matching Scan destination.
type MockPgRows struct {
	Data [][]any
	curr int
}

func (r *MockPgRows) Close()                                       {}
func (r *MockPgRows) Err() error                                   { return nil }
func (r *MockPgRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *MockPgRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *MockPgRows) Values() ([]any, error)                       { return r.Data[r.curr-1], nil }
func (r *MockPgRows) RawValues() [][]byte                          { return nil }
func (r *MockPgRows) Conn() *pgx.Conn                              { return nil }

func (r *MockPgRows) Next() bool {
	r.curr++
	return r.curr <= len(r.Data)
}

func (r *MockPgRows) Scan(dest ...any) error {
	row := r.Data[r.curr-1]
	if len(row) != len(dest) {
		return fmt.Errorf("mock row has %d values, scan wants %d", len(row), len(dest))
	}
	for i, v := range row {
		assign(dest[i], v)
	}
	return nil
}

type MockRow struct {
	ScanFunc func(dest ...any) error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

func assign(dest, val any) {
	d := reflect.ValueOf(dest).Elem()
	if val == nil {
		d.Set(reflect.Zero(d.Type()))
		return
	}
	d.Set(reflect.ValueOf(val))
}

type MockRedisClient struct {
	mu       sync.Mutex
	Sorted   map[string]float64
	Locked   map[string]any
	LockTTLs []time.Duration
	Evals    [][]any
	Messages []string
	ZErr     error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{Sorted: map[string]float64{}, Locked: map[string]any{}}
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, increment float64, member string) *redis.FloatCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ZErr != nil {
		return redis.NewFloatResult(0, m.ZErr)
	}
	m.Sorted[member] += increment
	return redis.NewFloatResult(m.Sorted[member], nil)
}

func (m *MockRedisClient) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zs []redis.Z
	for member, score := range m.Sorted {
		zs = append(zs, redis.Z{Member: member, Score: score})
	}
	// descending by score, then member, like Redis
	for i := 1; i < len(zs); i++ {
		for j := i; j > 0 && less(zs[j], zs[j-1]); j-- {
			zs[j], zs[j-1] = zs[j-1], zs[j]
		}
	}
	if int(stop+1) < len(zs) {
		zs = zs[:stop+1]
	}
	return redis.NewZSliceCmdResult(zs, nil)
}

func less(a, b redis.Z) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Member.(string) > b.Member.(string)
}

func (m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.Locked[key]; held {
		return redis.NewBoolResult(false, nil)
	}
	m.Locked[key] = value
	m.LockTTLs = append(m.LockTTLs, expiration)
	return redis.NewBoolResult(true, nil)
}

func (m *MockRedisClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Evals = append(m.Evals, args)
	if len(keys) == 1 && len(args) == 1 && m.Locked[keys[0]] == args[0] {
		delete(m.Locked, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (m *MockRedisClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := message.([]byte); ok {
		m.Messages = append(m.Messages, string(b))
	}
	return redis.NewIntResult(1, nil)
}

type MockArchive struct {
	mu     sync.Mutex
	Events []*models.GoalEvent
}

func (m *MockArchive) Enqueue(event *models.GoalEvent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return true
}
