package persistence

import (
	"context"
	"errors"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements booking.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order
func (r *GormOrderRepository) Create(ctx context.Context, order *booking.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByIDForUser finds an order by ID scoped to its owner. Orders belonging
// to other users are indistinguishable from missing ones.
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*booking.Order, error) {
	var order booking.Order
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByUser returns all orders for a user, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]booking.Order, error) {
	var orders []booking.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// LastAddressForUser returns the pickup address of the user's most recent
// order, or empty string when the user has no orders.
func (r *GormOrderRepository) LastAddressForUser(ctx context.Context, userID uuid.UUID) (string, error) {
	var order booking.Order
	err := r.db.WithContext(ctx).
		Select("address").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return order.Address, nil
}

// CancelPending cancels an order only while it is still pending. The status
// check happens inside the UPDATE itself so two concurrent cancels, or a
// cancel racing a status change, cannot both win.
func (r *GormOrderRepository) CancelPending(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, booking.OrderStatusPending).
		Update("status", booking.OrderStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: either the order does not exist for this user, or it
	// has already moved past Pending.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
}

// UpdateStatus sets an order's status regardless of its current state.
// Intended for the operator panel, which may move orders along the pipeline
// in any direction.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// StatsForUser returns the order counters shown on the customer dashboard
func (r *GormOrderRepository) StatsForUser(ctx context.Context, userID uuid.UUID) (*booking.UserOrderStats, error) {
	stats := &booking.UserOrderStats{}

	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("user_id = ? AND status = ?", userID, booking.OrderStatusPending).
		Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("user_id = ? AND status = ?", userID, booking.OrderStatusDelivered).
		Count(&stats.Delivered).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// FindAllWithUserPhone returns every order joined with the owning customer's
// phone number, newest first. Used by the operator panel.
func (r *GormOrderRepository) FindAllWithUserPhone(ctx context.Context) ([]booking.AdminOrderView, error) {
	var views []booking.AdminOrderView
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Select("orders.*, users.phone AS user_phone").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// AdminStats returns aggregate order counters and total revenue. Revenue sums
// every order that was not cancelled.
func (r *GormOrderRepository) AdminStats(ctx context.Context) (*booking.AdminOrderStats, error) {
	stats := &booking.AdminOrderStats{}

	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("status = ?", booking.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("status = ?", booking.OrderStatusDelivered).
		Count(&stats.DeliveredOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Where("status = ?", booking.OrderStatusCancelled).
		Count(&stats.CancelledOrders).Error; err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&booking.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("status != ?", booking.OrderStatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.Revenue = revenue.Decimal
	} else {
		stats.Revenue = decimal.Zero
	}

	return stats, nil
}

// Ensure GormOrderRepository implements booking.OrderRepository
var _ booking.OrderRepository = (*GormOrderRepository)(nil)
