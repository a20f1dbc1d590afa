// Package refresh implements the fixed-interval polling engine that keeps
// arrival and stop data fresh. A Poller wraps an asynchronous producer and
// re-invokes it on a schedule, tracking data, loading, error, and
// last-updated state.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jinsol-dev/busango/internal/metrics"
)

// DefaultInterval is the refresh cadence when none is configured.
const DefaultInterval = 30 * time.Second

// Fetch produces one round of data.
type Fetch[T any] func(ctx context.Context) (T, error)

// Options configures a Poller's schedule.
type Options struct {
	Interval time.Duration
	Enabled  bool
}

func (o *Options) normalize() {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
}

// Snapshot is the current poll state. A failure replaces Err but leaves the
// previous Data in place, so callers may keep rendering stale data under an
// error banner.
type Snapshot[T any] struct {
	Data        T
	HasData     bool
	Loading     bool
	Err         error
	LastUpdated time.Time
}

// Poller invokes the newest fetch function once immediately when started
// (if enabled) and thereafter at every interval tick. The fetch function
// lives in a mutable cell: replacing it takes effect on the next tick, never
// leaving a stale closure scheduled. Ticks never wait for an in-flight
// fetch; overlapping completions are serialized by a sequence guard so a
// slow early fetch cannot overwrite a later fetch's committed result.
type Poller[T any] struct {
	logger  *slog.Logger
	metrics *metrics.Collector

	mu      sync.Mutex
	fetch   Fetch[T]
	opts    Options
	snap    Snapshot[T]
	seq     uint64
	applied uint64
	baseCtx context.Context
	runCtx  context.Context
	cancel  context.CancelFunc
	updates chan struct{}

	wg sync.WaitGroup
}

// New creates a Poller. The metrics collector may be nil.
func New[T any](fetch Fetch[T], opts Options, logger *slog.Logger, collector *metrics.Collector) *Poller[T] {
	opts.normalize()
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller[T]{
		logger:  logger.With(slog.String("component", "refresh")),
		metrics: collector,
		fetch:   fetch,
		opts:    opts,
		updates: make(chan struct{}, 1),
	}
}

// SetFetch replaces the producer. The next scheduled tick uses it.
func (p *Poller[T]) SetFetch(fetch Fetch[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetch = fetch
}

// Start begins the schedule. When disabled it records the context and does
// nothing else, not even the initial fetch. Start is a no-op while running.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	p.baseCtx = ctx
	if p.cancel != nil || !p.opts.Enabled {
		p.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.runCtx = runCtx
	p.cancel = cancel
	interval := p.opts.Interval
	p.mu.Unlock()

	p.wg.Add(1)
	go p.loop(runCtx, interval)
}

func (p *Poller[T]) loop(ctx context.Context, interval time.Duration) {
	defer p.wg.Done()

	p.beginFetch(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.beginFetch(ctx)
		}
	}
}

// Stop cancels the schedule and waits for in-flight work. No fetch runs
// after Stop returns.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.runCtx = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// Configure replaces the schedule options and restarts the schedule from
// zero, exactly as if the poller had just been started with them.
func (p *Poller[T]) Configure(opts Options) {
	opts.normalize()
	p.Stop()

	p.mu.Lock()
	p.opts = opts
	ctx := p.baseCtx
	p.mu.Unlock()

	if ctx != nil && ctx.Err() == nil {
		p.Start(ctx)
	}
}

// Refresh triggers one out-of-schedule fetch, e.g. behind a manual refresh
// control. It does nothing on a poller that was never started.
func (p *Poller[T]) Refresh() {
	p.mu.Lock()
	ctx := p.runCtx
	if ctx == nil {
		ctx = p.baseCtx
	}
	p.mu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}
	p.beginFetch(ctx)
}

// Snapshot returns the current state.
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Updates signals state changes. The channel coalesces: a slow receiver sees
// at least one signal for any burst of changes.
func (p *Poller[T]) Updates() <-chan struct{} {
	return p.updates
}

func (p *Poller[T]) beginFetch(ctx context.Context) {
	p.mu.Lock()
	fetch := p.fetch
	p.seq++
	seq := p.seq
	p.snap.Loading = true
	p.mu.Unlock()
	p.notify()

	p.metrics.ObservePollTick()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		data, err := fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		p.commit(seq, data, err)
	}()
}

// commit applies a fetch result unless a later fetch already committed.
func (p *Poller[T]) commit(seq uint64, data T, err error) {
	p.mu.Lock()
	if seq <= p.applied {
		p.mu.Unlock()
		return
	}
	p.applied = seq
	p.snap.Loading = false
	if err != nil {
		p.snap.Err = err
		p.mu.Unlock()
		p.metrics.ObservePollFailure()
		p.logger.Warn("refresh failed", slog.String("error", err.Error()))
		p.notify()
		return
	}
	p.snap.Err = nil
	p.snap.Data = data
	p.snap.HasData = true
	p.snap.LastUpdated = time.Now()
	p.mu.Unlock()
	p.notify()
}

func (p *Poller[T]) notify() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}
