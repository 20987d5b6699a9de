// Package memory keeps wizard sessions in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// Store is a mutex-guarded map of sessions.
//
// Sessions idle for longer than the TTL are dropped on access, by a
// background sweep every sweep interval, and by Create once an interval
// has passed since the last sweep.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]entry
	ttl        time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type entry struct {
	session  domain.Session
	lastSeen time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires sessions idle for longer than ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithSweepInterval sets how often expired sessions are swept.
// It defaults to the TTL and has no effect without one.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Store) {
		s.sweepEvery = d
	}
}

// WithNow overrides the time source used for expiry.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store. With a TTL it also starts the background
// sweep, which Close stops.
func New(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ttl > 0 {
		if s.sweepEvery <= 0 {
			s.sweepEvery = s.ttl
		}
		s.lastSweep = s.now()
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.sweepLoop()
	}
	return s
}

// Create implements domain.SessionStore.
func (s *Store) Create(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl > 0 && s.now().Sub(s.lastSweep) >= s.sweepEvery {
		s.sweepLocked()
	}

	if e, ok := s.sessions[session.ID]; ok && !s.expired(e) {
		return fmt.Errorf("%w: %s", domain.ErrSessionExists, session.ID)
	}
	s.sessions[session.ID] = entry{session: session.Clone(), lastSeen: s.now()}
	return nil
}

// Get implements domain.SessionStore.
func (s *Store) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if s.expired(e) {
		delete(s.sessions, id)
		return domain.Session{}, domain.ErrSessionNotFound
	}

	e.lastSeen = s.now()
	s.sessions[id] = e
	return e.session.Clone(), nil
}

// Save implements domain.SessionStore.
func (s *Store) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[session.ID]
	if !ok || s.expired(e) {
		delete(s.sessions, session.ID)
		return domain.ErrSessionNotFound
	}
	s.sessions[session.ID] = entry{session: session.Clone(), lastSeen: s.now()}
	return nil
}

// Delete implements domain.SessionStore.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.lastSweep = s.now()
	return removed
}

func (s *Store) sweepLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close stops the background sweep. It is safe to call more than once.
func (s *Store) Close() error {
	if s.stop == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastSeen) > s.ttl
}

var _ domain.SessionStore = (*Store)(nil)
