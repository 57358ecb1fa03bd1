package booking

import (
	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddAddressInput contains the input for saving a delivery address
type AddAddressInput struct {
	UserID  uuid.UUID
	Label   string
	Address string
}

// StageOrderInput contains the booking form fields
type StageOrderInput struct {
	UserID     uuid.UUID
	Address    string
	PickupDate string
	PickupTime string
	Service    string
	Weight     decimal.Decimal
}

// ConfirmPaymentInput contains the input for committing a staged order
type ConfirmPaymentInput struct {
	UserID        uuid.UUID
	PaymentMethod string
}

// BookingContextResult carries everything the booking form needs to
// prefill itself
type BookingContextResult struct {
	Addresses        []booking.Address
	LastOrderAddress string
}

// InvoiceResult is the billing summary for a single order
type InvoiceResult struct {
	Order         *booking.Order
	CustomerName  string
	CustomerPhone string
}

// DashboardResult is the customer dashboard summary
type DashboardResult struct {
	Name  string
	Stats booking.UserOrderStats
}
