package pricing

// Adaptive worker pool: a bounded-queue pool whose size is tuned from the p95
// of observed vendor-call latency. Scale-ups spawn workers immediately;
// scale-downs let surplus workers retire on idle timeout.

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrQueueFull is returned by Submit when the bounded work queue is at
// capacity. Callers treat it as a task failure.
var ErrQueueFull = errors.New("worker pool queue full")

// Task is one unit of work.
type Task func()

// PoolConfig carries the tuning knobs for the adaptive pool.
type PoolConfig struct {
	Min           int
	Max           int
	Step          int
	TargetP95     time.Duration // scale up above this
	LowerP95      time.Duration // scale down below this
	WindowSize    int
	QueueCapacity int
	Cooldown      time.Duration
	IdleTimeout   time.Duration
	TickInterval  time.Duration
}

// DefaultPoolConfig returns the production defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Min:           8,
		Max:           64,
		Step:          8,
		TargetP95:     250 * time.Millisecond,
		LowerP95:      200 * time.Millisecond,
		WindowSize:    2000,
		QueueCapacity: 2048,
		Cooldown:      20 * time.Second,
		IdleTimeout:   60 * time.Second,
		TickInterval:  5 * time.Second,
	}
}

// Pool is the adaptive worker pool. Current size always stays within
// [Min, Max]; consecutive resizes are at least Cooldown apart.
type Pool struct {
	cfg    PoolConfig
	logger *slog.Logger
	window *latencyWindow

	queue  chan Task
	active atomic.Int32

	mu        sync.Mutex
	current   int // target worker count
	workers   int // live worker count
	lastScale time.Time

	// onSnapshot, when set, observes every controller tick (metrics gauges).
	onSnapshot func(p95 time.Duration, size, active, queueDepth int)

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// ObserveSnapshots registers a callback invoked on every controller tick,
// used to mirror pool state onto metrics gauges. Call before Start.
func (p *Pool) ObserveSnapshots(fn func(p95 time.Duration, size, active, queueDepth int)) {
	p.onSnapshot = fn
}

// NewPool builds a pool; Start must be called before Submit.
func NewPool(cfg PoolConfig, logger *slog.Logger) *Pool {
	if cfg.Min <= 0 {
		cfg.Min = 1
	}
	if cfg.Max < cfg.Min {
		cfg.Max = cfg.Min
	}
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 2048
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 5 * time.Second
	}
	return &Pool{
		cfg:     cfg,
		logger:  logger,
		window:  newLatencyWindow(cfg.WindowSize),
		queue:   make(chan Task, cfg.QueueCapacity),
		current: cfg.Min,
		stop:    make(chan struct{}),
	}
}

// Start spawns the initial workers and the autoscale controller. The pool
// shuts down when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	for p.workers < p.current {
		p.spawnLocked()
	}
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.adjust(time.Now())
			case <-ctx.Done():
				p.stopOnce.Do(func() { close(p.stop) })
				return
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop retires all workers; queued tasks that have not started are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.wg.Wait()
}

// Submit enqueues a task, or fails fast when the queue is full.
func (p *Pool) Submit(task Task) error {
	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// RecordLatency feeds one completed-task latency into the scaling window.
func (p *Pool) RecordLatency(d time.Duration) {
	p.window.Record(d)
}

// Size returns the current target pool size.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Active returns the number of tasks executing right now.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// QueueDepth returns the number of accepted tasks not yet executing.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

func (p *Pool) spawnLocked() {
	p.workers++
	p.wg.Add(1)
	go p.worker()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	idle := time.NewTimer(p.cfg.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case task := <-p.queue:
			p.active.Add(1)
			task()
			p.active.Add(-1)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(p.cfg.IdleTimeout)
		case <-idle.C:
			if p.tryRetire() {
				return
			}
			idle.Reset(p.cfg.IdleTimeout)
		case <-p.stop:
			p.mu.Lock()
			p.workers--
			p.mu.Unlock()
			return
		}
	}
}

// tryRetire lets an idle worker exit when the pool holds more workers than
// its current target. The target never drops below Min, so workers at or
// below the minimum stay resident.
func (p *Pool) tryRetire() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.workers > p.current {
		p.workers--
		return true
	}
	return false
}

// adjust runs one controller tick: compute p95, log the snapshot, and resize
// within the cooldown constraint.
func (p *Pool) adjust(now time.Time) {
	p95 := p.window.Percentile(0.95)
	active := p.Active()
	depth := p.QueueDepth()

	p.mu.Lock()
	current := p.current
	p.mu.Unlock()

	p.logger.Info("autoscaler snapshot",
		"p95", p95,
		"pool_size", current,
		"max", p.cfg.Max,
		"active", active,
		"queue_depth", depth,
	)
	if p.onSnapshot != nil {
		p.onSnapshot(p95, current, active, depth)
	}

	if p.window.Len() == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastScale.IsZero() && now.Sub(p.lastScale) < p.cfg.Cooldown {
		return
	}

	switch {
	case p95 > p.cfg.TargetP95 && p.current < p.cfg.Max:
		newSize := p.current + p.cfg.Step
		if newSize > p.cfg.Max {
			newSize = p.cfg.Max
		}
		old := p.current
		p.current = newSize
		for p.workers < p.current {
			p.spawnLocked()
		}
		p.lastScale = now
		p.logger.Info("autoscaler scale up",
			"from", old, "to", newSize, "p95", p95, "target", p.cfg.TargetP95)

	case p95 < p.cfg.LowerP95 && p.current > p.cfg.Min:
		// Only shrink when the pool is not heavily loaded.
		if active >= int(float64(p.current)*0.7) {
			return
		}
		newSize := p.current - p.cfg.Step
		if newSize < p.cfg.Min {
			newSize = p.cfg.Min
		}
		old := p.current
		p.current = newSize
		p.lastScale = now
		p.logger.Info("autoscaler scale down",
			"from", old, "to", newSize, "p95", p95, "lower", p.cfg.LowerP95)
	}
}
