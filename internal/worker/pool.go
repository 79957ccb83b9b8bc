// Package worker implements the buffered worker pool that archives goal
// events to ClickHouse. It decouples tournament runs from analytics writes:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Prometheus metrics
var (
	goalsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_archive_goals_queued_total",
		Help: "Total number of goal events queued for the archive",
	})

	goalsArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_archive_goals_written_total",
		Help: "Total number of goal events written to ClickHouse",
	})

	goalsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_archive_goals_failed_total",
		Help: "Total number of goal events lost to failed batches",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cup_archive_queue_depth",
		Help: "Current depth of the archive queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cup_archive_batch_duration_seconds",
		Help:    "Duration of goal batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	goalsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cup_archive_goals_load_shed_total",
		Help: "Total number of goal events dropped due to load shedding",
	})
)

const insertGoals = `
	INSERT INTO cup_stats.goal_events (
		timestamp, run_id, match_id, stage, slot, team, opponent, player, minute
	)
`

// Job represents a unit of work for the worker pool
type Job struct {
	Event    *models.GoalEvent
	QueuedAt time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async goal archiving
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Goal archive pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes the queue and waits for workers to flush what they hold.
func (p *Pool) Stop() {
	p.logger.Info("Stopping goal archive pool...")

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Goal archive pool stopped")
}

// Enqueue adds a goal to the queue without blocking. It returns false when
// the queue is full or the pool is stopped; the event is dropped.
func (p *Pool) Enqueue(event *models.GoalEvent) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		goalsLoadShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- Job{Event: event, QueuedAt: time.Now()}:
		goalsQueued.Inc()
		return true
	default:
		goalsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Goal batch failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			goalsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Goal batch archived", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			goalsArchived.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes a batch of goals in one ClickHouse insert
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	// the pool context may already be cancelled during shutdown flushes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertGoals)
	if err != nil {
		return err
	}

	for _, job := range batch {
		ev := job.Event
		ts := ev.Timestamp
		if ts.IsZero() {
			ts = job.QueuedAt
		}
		err := chBatch.Append(
			ts,
			ev.RunID,
			ev.MatchID,
			string(ev.Stage),
			uint8(ev.Slot),
			ev.Team,
			ev.Opponent,
			ev.Player,
			uint8(ev.Minute),
		)
		if err != nil {
			p.logger.Warnw("Failed to append goal to batch", "error", err, "stage", ev.Stage, "minute", ev.Minute)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		return err
	}
	return nil
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
