package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedOrder(t *testing.T) *booking.PendingOrder {
	t.Helper()
	pending, err := booking.NewPendingOrder("12 Rose St", "2026-09-01", "10:00 AM", booking.ServiceWashIron, decimal.NewFromInt(4))
	require.NoError(t, err)
	return pending
}

func TestInMemoryPendingOrderStore_PutGetConsume(t *testing.T) {
	store := NewInMemoryPendingOrderStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	userID := uuid.New()
	pending := stagedOrder(t)

	require.NoError(t, store.Put(ctx, userID, pending))

	// Get does not consume
	got, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, pending.Address, got.Address)

	got, err = store.Get(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	// Consume removes the slot
	got, err = store.Consume(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(pending.TotalPrice))

	_, err = store.Get(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = store.Consume(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryPendingOrderStore_PutOverwrites(t *testing.T) {
	store := NewInMemoryPendingOrderStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	userID := uuid.New()
	first := stagedOrder(t)

	second, err := booking.NewPendingOrder("4 Tech Park", "2026-09-02", "2:00 PM", booking.ServiceDryClean, decimal.NewFromInt(2))
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, userID, first))
	require.NoError(t, store.Put(ctx, userID, second))

	got, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "4 Tech Park", got.Address)
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryPendingOrderStore_PerUserSlots(t *testing.T) {
	store := NewInMemoryPendingOrderStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	userA := uuid.New()
	userB := uuid.New()

	require.NoError(t, store.Put(ctx, userA, stagedOrder(t)))

	_, err := store.Get(ctx, userB)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = store.Consume(ctx, userA)
	require.NoError(t, err)
}

func TestInMemoryPendingOrderStore_Expiration(t *testing.T) {
	store := NewInMemoryPendingOrderStore(time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, store.Put(ctx, userID, stagedOrder(t)))

	time.Sleep(10 * time.Millisecond)

	_, err := store.Get(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = store.Consume(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryPendingOrderStore_ConcurrentConsume(t *testing.T) {
	store := NewInMemoryPendingOrderStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, store.Put(ctx, userID, stagedOrder(t)))

	const workers = 16
	var wins int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Consume(ctx, userID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly one consumer wins the staged order
	assert.Equal(t, int64(1), wins)
}

func TestInMemoryPendingOrderStore_Close(t *testing.T) {
	store := NewInMemoryPendingOrderStore(time.Minute)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
