// Package sessionstate holds named view snapshots between navigations. A
// page saves its state under a name on the way out and takes it back,
// destructively, on the way in. Entries expire after a TTL so abandoned
// snapshots do not pile up.
package sessionstate

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultTTL covers a normal detail-page round trip with generous slack.
const DefaultTTL = 30 * time.Minute

type entry struct {
	blob      json.RawMessage
	expiresAt time.Time
}

// Store is a thread-safe in-memory snapshot store keyed by owner and name.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewStore creates a store with the given TTL, DefaultTTL when zero.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.cleanup()
	return s
}

func key(ownerID, name string) string {
	return ownerID + "\x00" + name
}

// Save stores a snapshot, replacing any previous one under the same name.
func (s *Store) Save(ownerID, name string, blob json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key(ownerID, name)] = entry{
		blob:      blob,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Take returns a snapshot and removes it, so a restore happens at most once.
// Expired entries count as absent.
func (s *Store) Take(ownerID, name string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(ownerID, name)
	e, ok := s.entries[k]
	if !ok {
		return nil, false
	}
	delete(s.entries, k)
	if time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.blob, true
}

// Clear drops a snapshot without reading it.
func (s *Store) Clear(ownerID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(ownerID, name))
}

// Close stops the background cleanup goroutine.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

// cleanup runs periodically to remove expired snapshots.
func (s *Store) cleanup() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
