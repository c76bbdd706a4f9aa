// Package cache keeps recently computed domain analyses in memory so that
// repeat checks within the TTL window are served without new DNS traffic.
package cache

import (
	"context"
	"sync"
	"time"

	"domainvetter/internal/models"
)

type item struct {
	analysis   *models.DomainAnalysis
	expiration int64
}

// Store is a thread-safe TTL cache of domain analyses keyed by domain.
type Store struct {
	items map[string]item
	ttl   time.Duration
	mu    sync.RWMutex
}

func New(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
	}
}

// Set stores an analysis under its domain for the configured TTL.
func (s *Store) Set(domain string, analysis *models.DomainAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[domain] = item{
		analysis:   analysis,
		expiration: time.Now().Add(s.ttl).UnixNano(),
	}
}

// Get retrieves a cached analysis. An expired entry counts as a miss.
func (s *Store) Get(domain string) (*models.DomainAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, found := s.items[domain]
	if !found {
		return nil, false
	}
	if time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.analysis, true
}

// Cleanup removes expired items.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixNano()
	for k, v := range s.items {
		if now > v.expiration {
			delete(s.items, k)
		}
	}
}

// StartCleanup launches a goroutine that evicts expired entries every
// interval until ctx is cancelled.
func (s *Store) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

// Len reports the number of entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
