package handler

import (
	"time"

	"github.com/freshfold/backend/internal/application/booking"
	domainbooking "github.com/freshfold/backend/internal/domain/booking"
)

// =====================
// Booking Request DTOs
// =====================

// AddAddressRequest represents the request body for saving an address
type AddAddressRequest struct {
	Label   string `json:"label" binding:"required,min=1,max=100" example:"Home"`
	Address string `json:"address" binding:"required,min=1" example:"12 Lake Road, Dhanmondi"`
}

// StageOrderRequest represents the booking form submission
type StageOrderRequest struct {
	Address    string  `json:"address" binding:"required" example:"12 Lake Road, Dhanmondi"`
	PickupDate string  `json:"pickup_date" binding:"required" example:"2026-09-02"`
	PickupTime string  `json:"pickup_time" binding:"required" example:"10:00 AM"`
	Service    string  `json:"service" binding:"required" example:"Wash + Iron"`
	Weight     float64 `json:"weight" binding:"required,gt=0" example:"4.5"`
}

// ConfirmPaymentRequest represents the payment form submission.
// An empty payment method falls back to Cash on Delivery.
type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" example:"bKash"`
}

// =====================
// Booking Response DTOs
// =====================

// AddressResponse represents a saved address
type AddressResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingContextResponse carries the booking form prefill data
type BookingContextResponse struct {
	Addresses        []AddressResponse `json:"addresses"`
	LastOrderAddress string            `json:"last_order_address"`
}

// PendingOrderResponse represents the staged order shown on the payment page
type PendingOrderResponse struct {
	Address        string  `json:"address"`
	PickupDate     string  `json:"pickup_date"`
	PickupTime     string  `json:"pickup_time"`
	Service        string  `json:"service"`
	Weight         float64 `json:"weight"`
	ServicePrice   float64 `json:"service_price"`
	DeliveryCharge float64 `json:"delivery_charge"`
	TotalPrice     float64 `json:"total_price"`
}

// OrderResponse represents a committed order
type OrderResponse struct {
	ID             string    `json:"id"`
	Address        string    `json:"address"`
	PickupDate     string    `json:"pickup_date"`
	PickupTime     string    `json:"pickup_time"`
	Service        string    `json:"service"`
	Weight         float64   `json:"weight"`
	ServicePrice   float64   `json:"service_price"`
	DeliveryCharge float64   `json:"delivery_charge"`
	TotalPrice     float64   `json:"total_price"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InvoiceResponse represents the billing summary for an order
type InvoiceResponse struct {
	Order         OrderResponse `json:"order"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
}

// DashboardResponse represents the customer dashboard summary
type DashboardResponse struct {
	Name            string `json:"name"`
	TotalOrders     int64  `json:"total_orders"`
	PendingOrders   int64  `json:"pending_orders"`
	DeliveredOrders int64  `json:"delivered_orders"`
}

// CancelOrderResponse confirms a cancellation
type CancelOrderResponse struct {
	Message string `json:"message"`
}

// toAddressResponse converts a domain address to its response form
func toAddressResponse(a *domainbooking.Address) AddressResponse {
	return AddressResponse{
		ID:        a.ID.String(),
		Label:     a.Label,
		Address:   a.Address,
		CreatedAt: a.CreatedAt,
	}
}

// toPendingOrderResponse converts a staged order to its response form
func toPendingOrderResponse(p *domainbooking.PendingOrder) PendingOrderResponse {
	return PendingOrderResponse{
		Address:        p.Address,
		PickupDate:     p.PickupDate,
		PickupTime:     p.PickupTime,
		Service:        p.Service,
		Weight:         p.Weight.InexactFloat64(),
		ServicePrice:   p.ServicePrice.InexactFloat64(),
		DeliveryCharge: p.DeliveryCharge.InexactFloat64(),
		TotalPrice:     p.TotalPrice.InexactFloat64(),
	}
}

// toOrderResponse converts a committed order to its response form
func toOrderResponse(o *domainbooking.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID.String(),
		Address:        o.Address,
		PickupDate:     o.PickupDate,
		PickupTime:     o.PickupTime,
		Service:        o.Service,
		Weight:         o.Weight.InexactFloat64(),
		ServicePrice:   o.ServicePrice.InexactFloat64(),
		DeliveryCharge: o.DeliveryCharge.InexactFloat64(),
		TotalPrice:     o.TotalPrice.InexactFloat64(),
		PaymentMethod:  o.PaymentMethod,
		Status:         o.Status.String(),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// toInvoiceResponse converts an invoice result to its response form
func toInvoiceResponse(inv *booking.InvoiceResult) InvoiceResponse {
	return InvoiceResponse{
		Order:         toOrderResponse(inv.Order),
		CustomerName:  inv.CustomerName,
		CustomerPhone: inv.CustomerPhone,
	}
}
