package booking

import (
	"strings"

	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PendingOrder is a staged, not-yet-persisted order held between the
// booking step and the payment step. At most one exists per session;
// restaging overwrites it, and payment consumes it exactly once.
type PendingOrder struct {
	Address        string          `json:"address"`
	PickupDate     string          `json:"pickup_date"`
	PickupTime     string          `json:"pickup_time"`
	Service        string          `json:"service"`
	Weight         decimal.Decimal `json:"weight"`
	ServicePrice   decimal.Decimal `json:"service_price"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// NewPendingOrder validates the booking fields, computes the price
// breakdown, and returns the staged order.
func NewPendingOrder(address, pickupDate, pickupTime, service string, weight decimal.Decimal) (*PendingOrder, error) {
	address = strings.TrimSpace(address)
	pickupDate = strings.TrimSpace(pickupDate)
	pickupTime = strings.TrimSpace(pickupTime)
	service = strings.TrimSpace(service)

	if address == "" || pickupDate == "" || pickupTime == "" || service == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Please fill all fields")
	}
	if weight.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight must be a positive number")
	}

	quote := CalculateQuote(service, weight)

	return &PendingOrder{
		Address:        address,
		PickupDate:     pickupDate,
		PickupTime:     pickupTime,
		Service:        service,
		Weight:         weight,
		ServicePrice:   quote.ServicePrice,
		DeliveryCharge: quote.DeliveryCharge,
		TotalPrice:     quote.TotalPrice,
	}, nil
}
