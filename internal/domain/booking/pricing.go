package booking

import (
	"github.com/shopspring/decimal"
)

// Service labels offered for pickup. Unrecognized labels are priced at
// the base wash rate rather than rejected.
const (
	ServiceWash     = "Wash"
	ServiceWashIron = "Wash + Iron"
	ServiceDryClean = "Dry Clean"
)

// Per-kilogram rates by service label.
var serviceRates = map[string]decimal.Decimal{
	ServiceWash:     decimal.NewFromInt(50),
	ServiceWashIron: decimal.NewFromInt(80),
	ServiceDryClean: decimal.NewFromInt(120),
}

var (
	defaultRate = decimal.NewFromInt(50)

	deliveryChargeNear   = decimal.NewFromInt(30)
	deliveryChargeFar    = decimal.NewFromInt(50)
	deliveryWeightCutoff = decimal.NewFromInt(5)
)

// Quote is the computed price breakdown for a booking.
type Quote struct {
	ServicePrice   decimal.Decimal
	DeliveryCharge decimal.Decimal
	TotalPrice     decimal.Decimal
}

// ServiceRate returns the per-kilogram rate for a service label,
// falling back to the base wash rate for unknown labels.
func ServiceRate(service string) decimal.Decimal {
	if rate, ok := serviceRates[service]; ok {
		return rate
	}
	return defaultRate
}

// CalculateQuote computes the price breakdown for a service and weight.
// The delivery charge is a flat 30 up to 5 kg and 50 above.
// Deterministic and side-effect free; callers validate that weight is positive.
func CalculateQuote(service string, weight decimal.Decimal) Quote {
	servicePrice := ServiceRate(service).Mul(weight)

	deliveryCharge := deliveryChargeNear
	if weight.GreaterThan(deliveryWeightCutoff) {
		deliveryCharge = deliveryChargeFar
	}

	return Quote{
		ServicePrice:   servicePrice,
		DeliveryCharge: deliveryCharge,
		TotalPrice:     servicePrice.Add(deliveryCharge),
	}
}
