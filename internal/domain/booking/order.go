package booking

import (
	"fmt"

	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a laundry order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusPickedUp       OrderStatus = "Picked Up"
	OrderStatusInProcess      OrderStatus = "In Process"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// IsValid checks if the status belongs to the closed status set
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPickedUp, OrderStatusInProcess,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status permits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// DefaultPaymentMethod is used when the payment step omits a method
const DefaultPaymentMethod = "Cash on Delivery"

// Order represents a committed laundry order.
// Orders are created at payment confirmation, never at booking time,
// and are never deleted.
type Order struct {
	shared.BaseEntity
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Address        string          `gorm:"not null"`
	PickupDate     string          `gorm:"size:50;not null"`
	PickupTime     string          `gorm:"size:50;not null"`
	Service        string          `gorm:"size:50;not null"`
	Weight         decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	ServicePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod  string          `gorm:"size:50;not null"`
	Status         OrderStatus     `gorm:"size:30;not null;index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder commits a staged pending order with the chosen payment method.
// The order starts in Pending status.
func NewOrder(userID uuid.UUID, pending *PendingOrder, paymentMethod string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if pending == nil {
		return nil, shared.NewDomainError("NO_PENDING_ORDER", "No pending order found. Please book again")
	}
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	return &Order{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		Address:        pending.Address,
		PickupDate:     pending.PickupDate,
		PickupTime:     pending.PickupTime,
		Service:        pending.Service,
		Weight:         pending.Weight,
		ServicePrice:   pending.ServicePrice,
		DeliveryCharge: pending.DeliveryCharge,
		TotalPrice:     pending.TotalPrice,
		PaymentMethod:  paymentMethod,
		Status:         OrderStatusPending,
	}, nil
}

// Cancel transitions the order to Cancelled.
// Only permitted while the order is still Pending.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Only pending orders can be cancelled, order is %s", o.Status))
	}

	o.Status = OrderStatusCancelled
	o.Touch()

	return nil
}

// SetStatus moves the order to a new status from the closed status set.
// Used by the admin panel; validation of the target value happens here
// so free-text statuses never reach storage.
func (o *Order) SetStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Unknown order status %q", target))
	}

	o.Status = target
	o.Touch()

	return nil
}
