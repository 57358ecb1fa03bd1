package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateQuote(t *testing.T) {
	tests := []struct {
		name           string
		service        string
		weight         string
		servicePrice   string
		deliveryCharge string
		totalPrice     string
	}{
		{
			name:           "wash and iron under cutoff",
			service:        ServiceWashIron,
			weight:         "4",
			servicePrice:   "320",
			deliveryCharge: "30",
			totalPrice:     "350",
		},
		{
			name:           "dry clean over cutoff",
			service:        ServiceDryClean,
			weight:         "7",
			servicePrice:   "840",
			deliveryCharge: "50",
			totalPrice:     "890",
		},
		{
			name:           "wash at exact cutoff uses near charge",
			service:        ServiceWash,
			weight:         "5",
			servicePrice:   "250",
			deliveryCharge: "30",
			totalPrice:     "280",
		},
		{
			name:           "unknown service falls back to base rate",
			service:        "Starch Only",
			weight:         "2",
			servicePrice:   "100",
			deliveryCharge: "30",
			totalPrice:     "130",
		},
		{
			name:           "fractional weight keeps decimal precision",
			service:        ServiceWash,
			weight:         "2.5",
			servicePrice:   "125",
			deliveryCharge: "30",
			totalPrice:     "155",
		},
		{
			name:           "just above cutoff uses far charge",
			service:        ServiceWash,
			weight:         "5.01",
			servicePrice:   "250.5",
			deliveryCharge: "50",
			totalPrice:     "300.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weight, err := decimal.NewFromString(tt.weight)
			assert.NoError(t, err)

			quote := CalculateQuote(tt.service, weight)

			assert.True(t, quote.ServicePrice.Equal(mustDecimal(t, tt.servicePrice)),
				"service price: got %s, want %s", quote.ServicePrice, tt.servicePrice)
			assert.True(t, quote.DeliveryCharge.Equal(mustDecimal(t, tt.deliveryCharge)),
				"delivery charge: got %s, want %s", quote.DeliveryCharge, tt.deliveryCharge)
			assert.True(t, quote.TotalPrice.Equal(mustDecimal(t, tt.totalPrice)),
				"total price: got %s, want %s", quote.TotalPrice, tt.totalPrice)
		})
	}
}

func TestCalculateQuote_TotalIsAlwaysSum(t *testing.T) {
	weights := []string{"0.1", "1", "3.75", "5", "5.5", "12", "100"}
	services := []string{ServiceWash, ServiceWashIron, ServiceDryClean, "Unknown"}

	for _, s := range services {
		for _, w := range weights {
			weight := mustDecimal(t, w)
			quote := CalculateQuote(s, weight)
			assert.True(t, quote.TotalPrice.Equal(quote.ServicePrice.Add(quote.DeliveryCharge)),
				"service=%s weight=%s", s, w)
		}
	}
}

func TestServiceRate(t *testing.T) {
	assert.True(t, ServiceRate(ServiceWash).Equal(decimal.NewFromInt(50)))
	assert.True(t, ServiceRate(ServiceWashIron).Equal(decimal.NewFromInt(80)))
	assert.True(t, ServiceRate(ServiceDryClean).Equal(decimal.NewFromInt(120)))
	assert.True(t, ServiceRate("").Equal(decimal.NewFromInt(50)))
	assert.True(t, ServiceRate("wash").Equal(decimal.NewFromInt(50)), "labels are case sensitive")
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}
