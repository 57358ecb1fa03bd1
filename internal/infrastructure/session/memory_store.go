package session

import (
	"context"
	"sync"
	"time"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// slot holds a staged order with its expiration
type slot struct {
	pending   *booking.PendingOrder
	expiresAt time.Time
}

// InMemoryPendingOrderStore implements booking.PendingOrderStore using an
// in-memory map. Suitable for single-instance deployments and testing.
type InMemoryPendingOrderStore struct {
	mu        sync.Mutex
	slots     map[uuid.UUID]slot
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryPendingOrderStore creates a new in-memory store.
// It starts a background goroutine to clean up expired slots.
func NewInMemoryPendingOrderStore(ttl time.Duration) *InMemoryPendingOrderStore {
	store := &InMemoryPendingOrderStore{
		slots:    make(map[uuid.UUID]slot),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Put stages a pending order for the user, replacing any previous one
func (s *InMemoryPendingOrderStore) Put(_ context.Context, userID uuid.UUID, pending *booking.PendingOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[userID] = slot{
		pending:   pending,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Get returns the user's staged order without consuming it
func (s *InMemoryPendingOrderStore) Get(_ context.Context, userID uuid.UUID) (*booking.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, exists := s.slots[userID]
	if !exists || time.Now().After(sl.expiresAt) {
		return nil, shared.ErrNotFound
	}
	return sl.pending, nil
}

// Consume takes the staged order off the slot. The delete happens under the
// same lock as the read, so only one caller can receive a given staging.
func (s *InMemoryPendingOrderStore) Consume(_ context.Context, userID uuid.UUID) (*booking.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, exists := s.slots[userID]
	if !exists || time.Now().After(sl.expiresAt) {
		return nil, shared.ErrNotFound
	}
	delete(s.slots, userID)
	return sl.pending, nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryPendingOrderStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired slots
func (s *InMemoryPendingOrderStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryPendingOrderStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userID, sl := range s.slots {
		if now.After(sl.expiresAt) {
			delete(s.slots, userID)
		}
	}
}

// Size returns the number of staged orders (for testing/monitoring)
func (s *InMemoryPendingOrderStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Ensure InMemoryPendingOrderStore implements booking.PendingOrderStore
var _ booking.PendingOrderStore = (*InMemoryPendingOrderStore)(nil)
