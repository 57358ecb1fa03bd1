package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisPendingOrderStore implements booking.PendingOrderStore using Redis.
// This is suitable for distributed deployments where any instance may serve
// the payment request that follows a booking.
type RedisPendingOrderStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisPendingOrderStore creates a store with an existing Redis client
func NewRedisPendingOrderStore(client *redis.Client, ttl time.Duration) *RedisPendingOrderStore {
	return &RedisPendingOrderStore{
		client:    client,
		keyPrefix: "booking:pending:",
		ttl:       ttl,
	}
}

func (s *RedisPendingOrderStore) key(userID uuid.UUID) string {
	return s.keyPrefix + userID.String()
}

// Put stages a pending order for the user, replacing any previous one.
// The entry expires after the configured TTL if payment never arrives.
func (s *RedisPendingOrderStore) Put(ctx context.Context, userID uuid.UUID, pending *booking.PendingOrder) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending order: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stage pending order: %w", err)
	}
	return nil
}

// Get returns the user's staged order without consuming it
func (s *RedisPendingOrderStore) Get(ctx context.Context, userID uuid.UUID) (*booking.PendingOrder, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read pending order: %w", err)
	}

	var pending booking.PendingOrder
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending order: %w", err)
	}
	return &pending, nil
}

// Consume atomically takes the staged order off the slot. GETDEL guarantees
// that two concurrent payment submissions cannot both commit the same
// booking.
func (s *RedisPendingOrderStore) Consume(ctx context.Context, userID uuid.UUID) (*booking.PendingOrder, error) {
	data, err := s.client.GetDel(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to consume pending order: %w", err)
	}

	var pending booking.PendingOrder
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending order: %w", err)
	}
	return &pending, nil
}

// Close closes the Redis client
func (s *RedisPendingOrderStore) Close() error {
	return s.client.Close()
}

// Ensure RedisPendingOrderStore implements booking.PendingOrderStore
var _ booking.PendingOrderStore = (*RedisPendingOrderStore)(nil)
