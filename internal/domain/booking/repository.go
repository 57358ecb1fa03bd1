package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserOrderStats summarizes a single user's order history
type UserOrderStats struct {
	Total     int64
	Pending   int64
	Delivered int64
}

// AdminOrderStats summarizes all orders for the admin panel.
// Revenue sums total_price over non-cancelled orders.
type AdminOrderStats struct {
	TotalOrders     int64
	PendingOrders   int64
	DeliveredOrders int64
	CancelledOrders int64
	Revenue         decimal.Decimal
}

// AdminOrderView joins an order with its owner's phone for the admin listing
type AdminOrderView struct {
	Order
	UserPhone string
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// FindByIDForUser returns the order only when it belongs to the user,
	// so foreign ids are indistinguishable from absent ones.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	// LastAddressForUser returns the address of the user's most recent
	// order, or "" when the user has no orders.
	LastAddressForUser(ctx context.Context, userID uuid.UUID) (string, error)
	// CancelPending atomically moves the order to Cancelled if and only if
	// it belongs to the user and is still Pending. Returns ErrNotFound when
	// no such order exists and ErrInvalidState when the order exists but is
	// no longer Pending.
	CancelPending(ctx context.Context, id, userID uuid.UUID) error
	// UpdateStatus sets the status of any order by id
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	StatsForUser(ctx context.Context, userID uuid.UUID) (*UserOrderStats, error)
	FindAllWithUserPhone(ctx context.Context) ([]AdminOrderView, error)
	AdminStats(ctx context.Context) (*AdminOrderStats, error)
}

// AddressRepository defines persistence operations for saved addresses
type AddressRepository interface {
	Create(ctx context.Context, address *Address) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
}

// PendingOrderStore is the single-slot staging area between the booking
// and payment steps, keyed per user with a TTL.
type PendingOrderStore interface {
	// Put stages a pending order, overwriting any previously staged one
	Put(ctx context.Context, userID uuid.UUID, order *PendingOrder) error
	// Get returns the staged order, or ErrNotFound if none is staged
	Get(ctx context.Context, userID uuid.UUID) (*PendingOrder, error)
	// Consume atomically removes and returns the staged order, or
	// ErrNotFound if none is staged. A second Consume for the same slot
	// must fail, which makes the payment commit at-most-once.
	Consume(ctx context.Context, userID uuid.UUID) (*PendingOrder, error)
}
