// Package live recomputes quotes while a borrower edits a scenario. Edits
// are debounced, a newer edit aborts any older computation, and only the
// latest completed quote is ever applied.
package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quickgfe/domain"
	"quickgfe/observability"
)

const DefaultDebounce = 320 * time.Millisecond

// Quoter prices a raw scenario. Implemented by service.QuoteService and
// client.Client.
type Quoter interface {
	Quote(ctx context.Context, req domain.ScenarioRequest) (domain.QuoteOutput, error)
}

// Snapshot is the applied state. Quote is nil until the first computation
// succeeds; a later failure sets Err but keeps the previous Quote.
type Snapshot struct {
	Quote      *domain.QuoteOutput
	Err        error
	Loading    bool
	Generation uint64
}

// Pending is the outcome of one scheduled computation.
type Pending struct {
	done  chan struct{}
	quote domain.QuoteOutput
	err   error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(q domain.QuoteOutput, err error) {
	p.quote, p.err = q, err
	close(p.done)
}

// Done is closed once the computation finished or was superseded.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the computation resolves or ctx ends.
func (p *Pending) Wait(ctx context.Context) (domain.QuoteOutput, error) {
	select {
	case <-p.done:
		return p.quote, p.err
	case <-ctx.Done():
		return domain.QuoteOutput{}, ctx.Err()
	}
}

type Coordinator struct {
	quoter   Quoter
	debounce time.Duration
	metrics  *observability.Metrics
	logger   *slog.Logger
	onUpdate func(Snapshot)

	base     context.Context
	stopBase context.CancelFunc

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	waiting *Pending
	cancel  context.CancelFunc
	state   Snapshot
	closed  bool
}

type Option func(*Coordinator)

func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithOnUpdate registers a callback invoked with every applied snapshot. It
// runs on the computing goroutine and must not call back into Schedule.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(c *Coordinator) { c.onUpdate = fn }
}

func NewCoordinator(quoter Quoter, opts ...Option) *Coordinator {
	c := &Coordinator{
		quoter:   quoter,
		debounce: DefaultDebounce,
		logger:   observability.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.base, c.stopBase = context.WithCancel(context.Background())
	return c
}

// Schedule queues a computation for req after the debounce window. It
// supersedes any computation that is still waiting or running.
func (c *Coordinator) Schedule(req domain.ScenarioRequest) *Pending {
	p := newPending()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		p.resolve(domain.QuoteOutput{}, domain.ErrCancelled)
		return p
	}

	c.gen++
	gen := c.gen
	c.supersedeLocked()

	c.waiting = p
	c.state.Loading = true
	c.timer = time.AfterFunc(c.debounce, func() { c.run(gen, req, p) })
	return p
}

// supersedeLocked drops the waiting computation and aborts the running one.
func (c *Coordinator) supersedeLocked() {
	if c.timer != nil && c.timer.Stop() {
		c.cancelled(c.waiting)
	}
	// A timer that already fired sees the bumped generation and resolves
	// its own Pending.
	c.timer = nil
	c.waiting = nil

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Coordinator) cancelled(p *Pending) {
	if p == nil {
		return
	}
	c.metrics.IncrementLiveCancellations()
	p.resolve(domain.QuoteOutput{}, domain.ErrCancelled)
}

func (c *Coordinator) run(gen uint64, req domain.ScenarioRequest, p *Pending) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		c.cancelled(p)
		return
	}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.timer = nil
	c.waiting = nil
	c.mu.Unlock()

	out, err := c.quoter.Quote(ctx, req)
	cancel()

	c.mu.Lock()
	if gen != c.gen || c.closed || errors.Is(err, domain.ErrCancelled) {
		if gen == c.gen {
			c.state.Loading = false
			c.cancel = nil
		}
		c.mu.Unlock()
		c.logger.Debug("live quote superseded", "generation", gen)
		c.cancelled(p)
		return
	}

	c.cancel = nil
	c.state.Loading = false
	c.state.Generation = gen
	if err != nil {
		c.state.Err = fmt.Errorf("live quote: %w", err)
	} else {
		q := out
		c.state.Quote = &q
		c.state.Err = nil
	}
	snap := c.state
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("live quote failed", "generation", gen, "error", err)
	}
	if c.onUpdate != nil {
		c.onUpdate(snap)
	}
	p.resolve(out, err)
}

// Snapshot returns the applied state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close cancels any waiting or running computation. Later schedules resolve
// as cancelled.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	c.supersedeLocked()
	c.state.Loading = false
	c.stopBase()
}
