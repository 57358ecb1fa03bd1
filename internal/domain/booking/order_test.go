package booking

import (
	"testing"

	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedOrder(t *testing.T) *PendingOrder {
	t.Helper()
	pending, err := NewPendingOrder("12 Lake Road", "2026-09-02", "10:00 AM", ServiceWashIron, decimal.NewFromInt(4))
	require.NoError(t, err)
	return pending
}

func TestNewPendingOrder(t *testing.T) {
	t.Run("computes price breakdown", func(t *testing.T) {
		pending := stagedOrder(t)

		assert.True(t, pending.ServicePrice.Equal(decimal.NewFromInt(320)))
		assert.True(t, pending.DeliveryCharge.Equal(decimal.NewFromInt(30)))
		assert.True(t, pending.TotalPrice.Equal(decimal.NewFromInt(350)))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewPendingOrder("", "2026-09-02", "10:00 AM", ServiceWash, decimal.NewFromInt(2))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects whitespace-only fields", func(t *testing.T) {
		_, err := NewPendingOrder("12 Lake Road", "   ", "10:00 AM", ServiceWash, decimal.NewFromInt(2))
		assert.Error(t, err)
	})

	t.Run("rejects zero weight", func(t *testing.T) {
		_, err := NewPendingOrder("12 Lake Road", "2026-09-02", "10:00 AM", ServiceWash, decimal.Zero)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_WEIGHT", domainErr.Code)
	})

	t.Run("rejects negative weight", func(t *testing.T) {
		_, err := NewPendingOrder("12 Lake Road", "2026-09-02", "10:00 AM", ServiceWash, decimal.NewFromInt(-3))
		assert.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("commits staged fields with pending status", func(t *testing.T) {
		pending := stagedOrder(t)

		order, err := NewOrder(userID, pending, "UPI")
		require.NoError(t, err)

		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, pending.Address, order.Address)
		assert.Equal(t, pending.Service, order.Service)
		assert.Equal(t, "UPI", order.PaymentMethod)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.TotalPrice.Equal(pending.TotalPrice))
		assert.NotEqual(t, uuid.Nil, order.ID)
	})

	t.Run("defaults payment method", func(t *testing.T) {
		order, err := NewOrder(userID, stagedOrder(t), "")
		require.NoError(t, err)
		assert.Equal(t, DefaultPaymentMethod, order.PaymentMethod)
	})

	t.Run("requires a pending order", func(t *testing.T) {
		_, err := NewOrder(userID, nil, "UPI")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_PENDING_ORDER", domainErr.Code)
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, stagedOrder(t), "UPI")
		assert.Error(t, err)
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), stagedOrder(t), "")
		require.NoError(t, err)

		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("rejects cancel after delivery", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), stagedOrder(t), "")
		require.NoError(t, err)
		require.NoError(t, order.SetStatus(OrderStatusDelivered))

		err = order.Cancel()
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, OrderStatusDelivered, order.Status, "status must be unchanged")
	})
}

func TestOrderSetStatus(t *testing.T) {
	order, err := NewOrder(uuid.New(), stagedOrder(t), "")
	require.NoError(t, err)

	t.Run("accepts every status in the closed set", func(t *testing.T) {
		for _, s := range []OrderStatus{
			OrderStatusPending, OrderStatusPickedUp, OrderStatusInProcess,
			OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled,
		} {
			assert.NoError(t, order.SetStatus(s))
			assert.Equal(t, s, order.Status)
		}
	})

	t.Run("rejects free-text statuses", func(t *testing.T) {
		before := order.Status
		err := order.SetStatus("Lost In Transit")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
		assert.Equal(t, before, order.Status)
	})
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())
	assert.False(t, OrderStatus("Shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())

	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}
