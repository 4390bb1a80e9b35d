package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/ivannaromanovych/product-categories/internal/service"
)

type entry struct {
	controller *service.Controller
	lastSeen   time.Time
}

// Store maps session ids to controllers and evicts idle sessions.
type Store struct {
	mu            sync.Mutex
	sessions      map[string]*entry
	ttl           time.Duration
	newController func() *service.Controller
	logger        *slog.Logger
	now           func() time.Time

	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewStore returns an empty store. newController builds the controller for
// each new session; sessions idle for longer than ttl are evicted.
func NewStore(ttl time.Duration, newController func() *service.Controller, logger *slog.Logger) *Store {
	return &Store{
		sessions:      make(map[string]*entry),
		ttl:           ttl,
		newController: newController,
		logger:        logger,
		now:           time.Now,
		done:          make(chan struct{}),
	}
}

// Create starts a new session and returns its id and controller.
func (s *Store) Create() (string, *service.Controller) {
	id := xid.New().String()
	ctl := s.newController()

	s.mu.Lock()
	s.sessions[id] = &entry{controller: ctl, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Debug("session created", slog.String("session", id))
	return id, ctl
}

// Get returns the controller of a live session and marks it as used.
// Sessions past their TTL are reported missing even before the janitor
// removes them.
func (s *Store) Get(id string) (*service.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.controller, true
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune removes every session idle for longer than the TTL and returns how
// many were removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Start runs the janitor, pruning every interval until Stop is called.
func (s *Store) Start(interval time.Duration) {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.janitor(interval)
	})
}

// Stop shuts the janitor down and waits for it to exit.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Store) janitor(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				s.logger.Debug("idle sessions evicted",
					slog.Int("evicted", n),
					slog.Int("remaining", s.Len()),
				)
			}
		}
	}
}
