package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/identity"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupBookingTestDB creates an in-memory SQLite database with the booking schema
func setupBookingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.User{}, &booking.Address{}, &booking.Order{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, phone string) *identity.User {
	user, err := identity.NewUser("Asha Rao", phone, "pw1")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, status booking.OrderStatus, createdAt time.Time) *booking.Order {
	pending, err := booking.NewPendingOrder("12 Rose St", "2026-09-01", "10:00 AM", booking.ServiceWash, decimal.NewFromInt(4))
	require.NoError(t, err)

	order, err := booking.NewOrder(userID, pending, "")
	require.NoError(t, err)
	order.Status = status
	order.CreatedAt = createdAt

	require.NoError(t, db.Create(order).Error)
	return order
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "9990001111")
	order := createTestOrder(t, db, user.ID, booking.OrderStatusPending, time.Now())

	found, err := repo.FindByIDForUser(ctx, order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, "12 Rose St", found.Address)
	assert.Equal(t, booking.OrderStatusPending, found.Status)
	assert.True(t, found.TotalPrice.Equal(decimal.NewFromInt(230)))
}

func TestGormOrderRepository_FindByIDForUser_OtherUsersOrder(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "9990001111")
	other := createTestUser(t, db, "9990002222")
	order := createTestOrder(t, db, owner.ID, booking.OrderStatusPending, time.Now())

	// Another user's lookup must look like a missing order
	_, err := repo.FindByIDForUser(ctx, order.ID, other.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindByUser_NewestFirst(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "9990001111")
	base := time.Now().Add(-time.Hour)
	first := createTestOrder(t, db, user.ID, booking.OrderStatusDelivered, base)
	second := createTestOrder(t, db, user.ID, booking.OrderStatusPending, base.Add(10*time.Minute))
	third := createTestOrder(t, db, user.ID, booking.OrderStatusPending, base.Add(20*time.Minute))

	orders, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, third.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
	assert.Equal(t, first.ID, orders[2].ID)
}

func TestGormOrderRepository_LastAddressForUser(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "9990001111")

	// No orders yet
	addr, err := repo.LastAddressForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, addr)

	base := time.Now().Add(-time.Hour)
	old := createTestOrder(t, db, user.ID, booking.OrderStatusDelivered, base)
	old.Address = "1 Old Lane"
	require.NoError(t, db.Save(old).Error)

	recent := createTestOrder(t, db, user.ID, booking.OrderStatusPending, base.Add(30*time.Minute))
	recent.Address = "99 New Ave"
	require.NoError(t, db.Save(recent).Error)

	addr, err = repo.LastAddressForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "99 New Ave", addr)
}

func TestGormOrderRepository_CancelPending(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		db := setupBookingTestDB(t)
		repo := NewGormOrderRepository(db)
		ctx := context.Background()

		user := createTestUser(t, db, "9990001111")
		order := createTestOrder(t, db, user.ID, booking.OrderStatusPending, time.Now())

		require.NoError(t, repo.CancelPending(ctx, order.ID, user.ID))

		found, err := repo.FindByIDForUser(ctx, order.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.OrderStatusCancelled, found.Status)
	})

	t.Run("rejects non-pending order", func(t *testing.T) {
		db := setupBookingTestDB(t)
		repo := NewGormOrderRepository(db)
		ctx := context.Background()

		user := createTestUser(t, db, "9990001111")
		order := createTestOrder(t, db, user.ID, booking.OrderStatusDelivered, time.Now())

		err := repo.CancelPending(ctx, order.ID, user.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)

		// Status untouched
		found, err := repo.FindByIDForUser(ctx, order.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.OrderStatusDelivered, found.Status)
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		db := setupBookingTestDB(t)
		repo := NewGormOrderRepository(db)

		user := createTestUser(t, db, "9990001111")

		err := repo.CancelPending(context.Background(), uuid.New(), user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for another user's order", func(t *testing.T) {
		db := setupBookingTestDB(t)
		repo := NewGormOrderRepository(db)
		ctx := context.Background()

		owner := createTestUser(t, db, "9990001111")
		other := createTestUser(t, db, "9990002222")
		order := createTestOrder(t, db, owner.ID, booking.OrderStatusPending, time.Now())

		err := repo.CancelPending(ctx, order.ID, other.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		// Owner's order stays pending
		found, err := repo.FindByIDForUser(ctx, order.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.OrderStatusPending, found.Status)
	})

	t.Run("second cancel fails", func(t *testing.T) {
		db := setupBookingTestDB(t)
		repo := NewGormOrderRepository(db)
		ctx := context.Background()

		user := createTestUser(t, db, "9990001111")
		order := createTestOrder(t, db, user.ID, booking.OrderStatusPending, time.Now())

		require.NoError(t, repo.CancelPending(ctx, order.ID, user.ID))

		err := repo.CancelPending(ctx, order.ID, user.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "9990001111")
	order := createTestOrder(t, db, user.ID, booking.OrderStatusPending, time.Now())

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, booking.OrderStatusOutForDelivery))

	found, err := repo.FindByIDForUser(ctx, order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.OrderStatusOutForDelivery, found.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), booking.OrderStatusDelivered), shared.ErrNotFound)
}

func TestGormOrderRepository_StatsForUser(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "9990001111")
	other := createTestUser(t, db, "9990002222")

	now := time.Now()
	createTestOrder(t, db, user.ID, booking.OrderStatusPending, now)
	createTestOrder(t, db, user.ID, booking.OrderStatusPending, now)
	createTestOrder(t, db, user.ID, booking.OrderStatusDelivered, now)
	createTestOrder(t, db, user.ID, booking.OrderStatusCancelled, now)
	createTestOrder(t, db, other.ID, booking.OrderStatusPending, now)

	stats, err := repo.StatsForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Delivered)
}

func TestGormOrderRepository_FindAllWithUserPhone(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	userA := createTestUser(t, db, "9990001111")
	userB := createTestUser(t, db, "9990002222")

	base := time.Now().Add(-time.Hour)
	createTestOrder(t, db, userA.ID, booking.OrderStatusPending, base)
	orderB := createTestOrder(t, db, userB.ID, booking.OrderStatusDelivered, base.Add(10*time.Minute))

	views, err := repo.FindAllWithUserPhone(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest first, with the owner's phone attached
	assert.Equal(t, orderB.ID, views[0].ID)
	assert.Equal(t, "9990002222", views[0].UserPhone)
	assert.Equal(t, "9990001111", views[1].UserPhone)
}

func TestGormOrderRepository_AdminStats(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		stats, err := repo.AdminStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalOrders)
		assert.True(t, stats.Revenue.IsZero())
	})

	user := createTestUser(t, db, "9990001111")
	now := time.Now()
	// Each order totals 230 (Wash, 4kg: 200 + 30 delivery)
	createTestOrder(t, db, user.ID, booking.OrderStatusPending, now)
	createTestOrder(t, db, user.ID, booking.OrderStatusDelivered, now)
	createTestOrder(t, db, user.ID, booking.OrderStatusCancelled, now)

	t.Run("revenue excludes cancelled orders", func(t *testing.T) {
		stats, err := repo.AdminStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalOrders)
		assert.Equal(t, int64(1), stats.PendingOrders)
		assert.Equal(t, int64(1), stats.DeliveredOrders)
		assert.Equal(t, int64(1), stats.CancelledOrders)
		assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(460)),
			"expected 460, got %s", stats.Revenue)
	})
}
