// Package carousel implements the auto-advancing image carousel behind the
// project showcase.
//
// A Controller cycles through a fixed list of items on an interval. Manual
// navigation restarts the interval, Pause freezes the carousel until Resume,
// and Progress reports how far the current interval has run so a view can
// draw a progress bar. Close releases the timer; nothing fires afterwards.
package carousel

import (
	"sync"
	"time"

	"github.com/Edgar-mwila/portfolio/internal/clock"
)

// DefaultInterval is the advance interval used when none is given.
const DefaultInterval = 5 * time.Second

// State is the lifecycle state of a Controller.
type State int

const (
	// StateIdle means the carousel has at most one item and never ticks.
	StateIdle State = iota
	// StateRunning means an automatic advance is scheduled.
	StateRunning
	// StatePaused means the carousel is held by Pause.
	StatePaused
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of a Controller.
type Snapshot struct {
	Index    int     `json:"index"`
	Length   int     `json:"length"`
	Paused   bool    `json:"paused"`
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	clock clock.Clock
}

// WithClock makes the Controller use c instead of the real clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Controller drives one carousel. It is safe for concurrent use.
type Controller[T any] struct {
	mu       sync.Mutex
	clock    clock.Clock
	items    []T
	interval time.Duration

	index     int
	paused    bool
	closed    bool
	startedAt time.Time
	frozen    float64

	timer clock.Timer
	// gen identifies the scheduled tick. Cancelling or rescheduling bumps
	// it so a tick that already left the timer is discarded.
	gen uint64

	subs   map[int]chan Snapshot
	nextID int
}

// New creates a Controller over items and starts it when there is more than
// one item. A non-positive interval falls back to DefaultInterval. The items
// slice is copied.
func New[T any](items []T, interval time.Duration, opts ...Option) *Controller[T] {
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		opt(&o)
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	c := &Controller[T]{
		clock:    o.clock,
		items:    append([]T(nil), items...),
		interval: interval,
		subs:     make(map[int]chan Snapshot),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.startedAt = c.clock.Now()
	c.schedule()

	return c
}

// Items returns a copy of the item list.
func (c *Controller[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// Len returns the number of items.
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Interval returns the advance interval.
func (c *Controller[T]) Interval() time.Duration {
	return c.interval
}

// Index returns the current position, or -1 when there are no items.
func (c *Controller[T]) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return -1
	}

	return c.index
}

// Current returns the item at the current position. ok is false when the
// list is empty.
func (c *Controller[T]) Current() (item T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return item, false
	}

	return c.items[c.index], true
}

// Paused reports whether Pause is in effect.
func (c *Controller[T]) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.paused
}

// State returns the lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state()
}

// Progress returns the fraction of the current interval that has elapsed,
// clamped to [0, 1]. It is frozen while paused and 0 while idle.
func (c *Controller[T]) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.progress()
}

// Snapshot returns the current state in one consistent read.
func (c *Controller[T]) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

// Advance moves to the next item, wrapping to the first.
func (c *Controller[T]) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(c.items) == 0 {
		return
	}

	c.moveTo((c.index + 1) % len(c.items))
}

// Retreat moves to the previous item, wrapping to the last.
func (c *Controller[T]) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(c.items) == 0 {
		return
	}

	c.moveTo((c.index - 1 + len(c.items)) % len(c.items))
}

// GoTo jumps to index. Out of range requests are ignored and GoTo reports
// false.
func (c *Controller[T]) GoTo(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || index < 0 || index >= len(c.items) {
		return false
	}

	c.moveTo(index)

	return true
}

// Pause holds the carousel on the current item. Calling it again has no
// effect.
func (c *Controller[T]) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(c.items) == 0 || c.paused {
		return
	}

	c.frozen = c.progress()
	c.paused = true
	c.cancel()
	c.publish()
}

// Resume releases a Pause. The next advance comes one full interval after
// the call; time elapsed before the pause is not carried over.
func (c *Controller[T]) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(c.items) == 0 {
		return
	}

	c.paused = false
	c.frozen = 0
	c.startedAt = c.clock.Now()
	c.schedule()
	c.publish()
}

// Close stops the carousel for good and closes every subscription. It is
// safe to call more than once.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.cancel()

	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

// Subscribe returns a channel that receives a Snapshot after every index or
// pause change. Slow readers only see the latest snapshot. The returned
// func cancels the subscription; the channel is also closed by Close.
func (c *Controller[T]) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextID
	c.nextID++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

// tick is the timer callback for generation gen.
func (c *Controller[T]) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.paused || gen != c.gen {
		return
	}

	c.timer = nil
	c.moveTo((c.index + 1) % len(c.items))
}

// moveTo sets the index, resets progress and restarts the interval.
func (c *Controller[T]) moveTo(index int) {
	c.index = index
	c.frozen = 0
	c.startedAt = c.clock.Now()
	c.schedule()
	c.publish()
}

// schedule replaces any pending tick with a fresh one when the carousel
// should be running.
func (c *Controller[T]) schedule() {
	c.cancel()

	if c.closed || c.paused || len(c.items) < 2 {
		return
	}

	gen := c.gen
	c.timer = c.clock.AfterFunc(c.interval, func() { c.tick(gen) })
}

func (c *Controller[T]) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[T]) state() State {
	switch {
	case c.closed:
		return StateClosed
	case len(c.items) < 2:
		return StateIdle
	case c.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

func (c *Controller[T]) progress() float64 {
	if c.closed || len(c.items) < 2 {
		return 0
	}

	if c.paused {
		return c.frozen
	}

	elapsed := c.clock.Now().Sub(c.startedAt)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= c.interval:
		return 1
	default:
		return float64(elapsed) / float64(c.interval)
	}
}

func (c *Controller[T]) snapshot() Snapshot {
	index := c.index
	if len(c.items) == 0 {
		index = -1
	}

	return Snapshot{
		Index:    index,
		Length:   len(c.items),
		Paused:   c.paused,
		State:    c.state().String(),
		Progress: c.progress(),
	}
}

// publish hands the latest snapshot to every subscriber without blocking.
func (c *Controller[T]) publish() {
	if len(c.subs) == 0 {
		return
	}

	snap := c.snapshot()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
