// Package showcase ties project carousels to page views. Loading the page
// opens a Session with one carousel per project; the close beacon or idle
// expiry closes it again, which releases every carousel timer.
package showcase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/Edgar-mwila/portfolio/internal/carousel"
	"github.com/Edgar-mwila/portfolio/internal/clock"
)

// Carousel is the controller type used for project galleries.
type Carousel = carousel.Controller[string]

// Session is one mounted view of the showcase.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	lastSeen  time.Time
	carousels map[string]*Carousel
}

// Carousel returns the controller for a project slug.
func (s *Session) Carousel(project string) (*Carousel, bool) {
	c, ok := s.carousels[project]
	return c, ok
}

// Projects returns the project slugs of the session in sorted order.
func (s *Session) Projects() []string {
	projects := make([]string, 0, len(s.carousels))
	for slug := range s.carousels {
		projects = append(projects, slug)
	}
	sort.Strings(projects)

	return projects
}

// LastSeen returns when the session was last opened or looked up.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
}

func (s *Session) close() {
	for _, c := range s.carousels {
		c.Close()
	}
}

// Stats summarises the registry for the admin dashboard.
type Stats struct {
	ActiveSessions  int   `json:"active_sessions"`
	ActiveCarousels int   `json:"active_carousels"`
	Opened          int64 `json:"opened"`
	Expired         int64 `json:"expired"`
	Evicted         int64 `json:"evicted"`
	MaxSessions     int   `json:"max_sessions"`
}

// Registry owns every open Session.
type Registry struct {
	clock    clock.Clock
	interval time.Duration
	ttl      time.Duration
	// maxSessions caps open sessions; zero means no cap.
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*Session
	opened   int64
	expired  int64
	evicted  int64
	closed   bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the real clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// WithMaxSessions caps the number of open sessions. Opening one more
// closes the least recently seen session first. n <= 0 removes the cap.
func WithMaxSessions(n int) Option {
	return func(r *Registry) {
		r.maxSessions = n
	}
}

// NewRegistry creates a Registry whose carousels advance every interval and
// whose sessions expire after ttl without a lookup.
func NewRegistry(interval, ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{
		clock:    clock.Real(),
		interval: interval,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Open mounts a new Session with one carousel per gallery. It returns nil
// after Shutdown.
func (r *Registry) Open(galleries map[string][]string) *Session {
	now := r.clock.Now()

	s := &Session{
		ID:        xid.New().String(),
		CreatedAt: now,
		lastSeen:  now,
		carousels: make(map[string]*Carousel, len(galleries)),
	}
	for slug, images := range galleries {
		s.carousels[slug] = carousel.New(images, r.interval, carousel.WithClock(r.clock))
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		s.close()
		return nil
	}

	var evicted []*Session
	for r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		oldest := r.leastRecentlySeen()
		delete(r.sessions, oldest.ID)
		evicted = append(evicted, oldest)
	}
	r.evicted += int64(len(evicted))

	r.sessions[s.ID] = s
	r.opened++
	r.mu.Unlock()

	for _, old := range evicted {
		old.close()
	}

	return s
}

// leastRecentlySeen must be called with r.mu held on a non-empty registry.
// Ties go to the older ID; xid IDs sort by creation.
func (r *Registry) leastRecentlySeen() *Session {
	var (
		oldest *Session
		seen   time.Time
	)
	for _, s := range r.sessions {
		last := s.LastSeen()
		if oldest == nil || last.Before(seen) || (last.Equal(seen) && s.ID < oldest.ID) {
			oldest, seen = s, last
		}
	}

	return oldest
}

// Get looks up a Session and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()

	if !ok {
		return nil, false
	}

	s.touch(r.clock.Now())

	return s, true
}

// Close unmounts a Session. It reports whether the session existed.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.close()
	}

	return ok
}

// Sweep closes every session idle for longer than the TTL and returns how
// many it closed.
func (r *Registry) Sweep() int {
	deadline := r.clock.Now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.LastSeen().Before(deadline) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.expired += int64(len(stale))
	r.mu.Unlock()

	for _, s := range stale {
		s.close()
	}

	return len(stale)
}

// Run sweeps every period until ctx is done.
func (r *Registry) Run(ctx context.Context, period time.Duration) {
	var (
		mu      sync.Mutex
		stopped bool
		timer   clock.Timer
		loop    func()
	)

	loop = func() {
		mu.Lock()
		defer mu.Unlock()

		if stopped {
			return
		}
		r.Sweep()
		timer = r.clock.AfterFunc(period, loop)
	}

	mu.Lock()
	timer = r.clock.AfterFunc(period, loop)
	mu.Unlock()

	<-ctx.Done()

	mu.Lock()
	stopped = true
	timer.Stop()
	mu.Unlock()
}

// Shutdown closes every session. Later calls to Open return nil.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.closed = true
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Stats returns registry counters.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		ActiveSessions: len(r.sessions),
		Opened:         r.opened,
		Expired:        r.expired,
		Evicted:        r.evicted,
		MaxSessions:    r.maxSessions,
	}
	for _, s := range r.sessions {
		stats.ActiveCarousels += len(s.carousels)
	}

	return stats
}
