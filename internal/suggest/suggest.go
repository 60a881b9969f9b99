// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggest turns a raw keystroke stream into a debounced sequence
// of typeahead suggestion queries against the dataset store.
//
// Values arriving within the debounce window replace each other; a query
// runs only for the value the input settled on, so pending queries for
// stale values are cancelled by never being issued. Results delivered for
// a value that has since been superseded are discarded.
package suggest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

// DefaultDebounce is the input inactivity window before a suggestion
// query is issued.
const DefaultDebounce = 200 * time.Millisecond

// minQueryLength is the minimum trimmed input length that triggers a
// query. Shorter inputs clear the suggestion list immediately.
const minQueryLength = 3

// Store is the suggestion surface of the dataset store. Queries are
// best-effort and never fail; an error inside the store surfaces here as
// an empty list.
type Store interface {
	Ready() bool
	IdentifierSuggestions(ctx context.Context, query string, limit int) []types.Suggestion
}

// Controller debounces input values and delivers suggestion lists through
// a callback. A nil or empty list means "hide the dropdown".
type Controller struct {
	store   Store
	deliver func([]types.Suggestion)
	delay   time.Duration
	limit   int

	ctx context.Context
	gen atomic.Uint64

	inputCh  chan string
	cancelCh chan struct{}
	closeCh  chan struct{}
	once     sync.Once

	deliverMu sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce window. Tests use small values to
// avoid real waits.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithLimit caps the number of suggestions requested per query.
func WithLimit(n int) Option {
	return func(c *Controller) { c.limit = n }
}

// NewController starts a controller over the given store. deliver is
// invoked serially with each new suggestion list. Callers must Close the
// controller when the input is torn down.
func NewController(ctx context.Context, store Store, deliver func([]types.Suggestion), opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		deliver: deliver,
		delay:   DefaultDebounce,
		ctx:     ctx,
		inputCh:  make(chan string),
		cancelCh: make(chan struct{}),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.loop()
	return c
}

// SetInput feeds the current value of the search field. Calling it again
// before the debounce window elapses supersedes the previous value.
func (c *Controller) SetInput(value string) {
	select {
	case c.inputCh <- value:
	case <-c.closeCh:
	}
}

// Select accepts a suggestion: the pending debounce timer is stopped so
// the superseded value's query is never issued, any in-flight result is
// discarded, the dropdown is hidden, and the suggestion's identifier is
// returned for the caller to run a full search with.
func (c *Controller) Select(s types.Suggestion) string {
	c.gen.Add(1)
	select {
	case c.cancelCh <- struct{}{}:
	case <-c.closeCh:
	}
	c.dispatch(nil)
	return s.Identifier
}

// Close stops the debounce loop. No callbacks fire after Close returns.
func (c *Controller) Close() {
	c.once.Do(func() {
		c.gen.Add(1)
		close(c.closeCh)
	})
}

// loop owns the debounce timer. The timer starts stopped and is reset on
// every qualifying input; when it fires, exactly one query runs for the
// latest value.
func (c *Controller) loop() {
	timer := time.NewTimer(c.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	// pendingGen pins the query to the input that scheduled it: anything
	// that supersedes the input (newer input, Select, Close) bumps the
	// generation and the late result is dropped.
	var pending string
	var pendingGen uint64

	for {
		select {
		case value := <-c.inputCh:
			gen := c.gen.Add(1)

			trimmed := strings.TrimSpace(value)
			if !c.store.Ready() || len(trimmed) < minQueryLength {
				stopTimer(timer)
				c.deliverIfCurrent(gen, nil)
				continue
			}

			pending, pendingGen = trimmed, gen
			stopTimer(timer)
			timer.Reset(c.delay)

		case <-timer.C:
			go c.query(pendingGen, pending)

		case <-c.cancelCh:
			stopTimer(timer)

		case <-c.closeCh:
			return
		}
	}
}

// query runs off the debounce loop so a slow store never delays newer
// input handling.
func (c *Controller) query(gen uint64, value string) {
	suggestions := c.store.IdentifierSuggestions(c.ctx, value, c.limit)
	c.deliverIfCurrent(gen, suggestions)
}

// deliverIfCurrent drops results that belong to a superseded input.
func (c *Controller) deliverIfCurrent(gen uint64, suggestions []types.Suggestion) {
	select {
	case <-c.closeCh:
		return
	default:
	}
	if gen != c.gen.Load() {
		return
	}
	c.dispatch(suggestions)
}

func (c *Controller) dispatch(suggestions []types.Suggestion) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	c.deliver(suggestions)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
