// Package apisession remembers the last selection of each UI client, so a
// page that reconnects (reload, dropped socket) resumes where it was.
// Clients identify themselves with a UUID generated in the page.
package apisession

import (
	"sync"
	"time"

	"syntaxsheet/pkg/controller"
)

// cleanupInterval is how often Save() triggers lazy eviction of expired entries.
const cleanupInterval = 100

type entry struct {
	state    controller.State
	lastSeen time.Time
}

// Store maps client IDs to their last selection. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	saves   int
}

// New creates a Store that forgets clients inactive longer than ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save records the selection of a client.
func (s *Store) Save(id string, st controller.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.saves%cleanupInterval == 0 {
		s.cleanupLocked()
	}
	s.entries[id] = &entry{state: st, lastSeen: s.now()}
}

// Load returns the last selection of a client, if it is still remembered.
func (s *Store) Load(id string) (controller.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		return controller.State{}, false
	}
	e.lastSeen = s.now()
	return e.state, true
}

// Cleanup evicts all clients that have been inactive longer than the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
}

func (s *Store) cleanupLocked() {
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.lastSeen) > s.ttl
}

// Len returns the number of remembered clients.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
