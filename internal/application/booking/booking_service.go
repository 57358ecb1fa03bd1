package booking

import (
	"context"
	"errors"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/freshfold/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService handles the booking flow: saved addresses, quote
// staging and the payment commit.
type BookingService struct {
	orderRepo    booking.OrderRepository
	addressRepo  booking.AddressRepository
	pendingStore booking.PendingOrderStore
	logger       *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	orderRepo booking.OrderRepository,
	addressRepo booking.AddressRepository,
	pendingStore booking.PendingOrderStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		orderRepo:    orderRepo,
		addressRepo:  addressRepo,
		pendingStore: pendingStore,
		logger:       logger,
	}
}

// AddAddress saves a delivery address for the user
func (s *BookingService) AddAddress(ctx context.Context, input AddAddressInput) (*booking.Address, error) {
	address, err := booking.NewAddress(input.UserID, input.Label, input.Address)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error("Failed to save address",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save address")
	}

	s.logger.Info("Address saved",
		zap.String("user_id", input.UserID.String()),
		zap.String("address_id", address.ID.String()))

	return address, nil
}

// ListAddresses returns the user's saved addresses, newest first
func (s *BookingService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]booking.Address, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list addresses",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load addresses")
	}
	return addresses, nil
}

// BookingContext returns the saved addresses together with the address
// of the user's most recent order, for prefilling the booking form.
func (s *BookingService) BookingContext(ctx context.Context, userID uuid.UUID) (*BookingContextResult, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load addresses for booking context",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load booking context")
	}

	lastAddress, err := s.orderRepo.LastAddressForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load last order address",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load booking context")
	}

	return &BookingContextResult{
		Addresses:        addresses,
		LastOrderAddress: lastAddress,
	}, nil
}

// StageOrder validates the booking form, computes the quote and stages
// the pending order. Restaging overwrites any previously staged slot.
func (s *BookingService) StageOrder(ctx context.Context, input StageOrderInput) (*booking.PendingOrder, error) {
	pending, err := booking.NewPendingOrder(
		input.Address,
		input.PickupDate,
		input.PickupTime,
		input.Service,
		input.Weight,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pendingStore.Put(ctx, input.UserID, pending); err != nil {
		s.logger.Error("Failed to stage pending order",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to stage order")
	}

	s.logger.Info("Order staged",
		zap.String("user_id", input.UserID.String()),
		zap.String("service", pending.Service),
		zap.String("total_price", pending.TotalPrice.String()))

	return pending, nil
}

// GetPendingOrder returns the staged order without consuming it
func (s *BookingService) GetPendingOrder(ctx context.Context, userID uuid.UUID) (*booking.PendingOrder, error) {
	pending, err := s.pendingStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_PENDING_ORDER", "No pending order found. Please book again")
		}
		s.logger.Error("Failed to load pending order",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load pending order")
	}
	return pending, nil
}

// ConfirmPayment consumes the staged slot and commits it as an order.
// The consume is atomic, so concurrent confirmations for the same slot
// produce exactly one order.
func (s *BookingService) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*booking.Order, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "confirm_payment",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, input.UserID.String()))
	defer span.End()

	pending, err := s.pendingStore.Consume(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_PENDING_ORDER", "No pending order found. Please book again")
		}
		s.logger.Error("Failed to consume pending order",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	order, err := booking.NewOrder(input.UserID, pending, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, order.ID.String(),
		telemetry.SpanAttrAmount, order.TotalPrice.String(),
	)
	telemetry.AddEvent(span, "order_committed", telemetry.SpanAttrOrderID, order.ID.String())

	s.logger.Info("Order placed",
		zap.String("user_id", input.UserID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("payment_method", order.PaymentMethod),
		zap.String("total_price", order.TotalPrice.String()))

	return order, nil
}
