package booking

import (
	"context"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/identity"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order history, cancellation and invoicing for
// customers. Every lookup is scoped to the owning user.
type OrderService struct {
	orderRepo booking.OrderRepository
	userRepo  identity.UserRepository
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo booking.OrderRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// ListOrders returns the user's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]booking.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load orders")
	}
	return orders, nil
}

// GetOrder returns a single order owned by the user
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*booking.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}
	return order, nil
}

// CancelOrder cancels the user's order while it is still pending
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	if err := s.orderRepo.CancelPending(ctx, orderID, userID); err != nil {
		return err
	}

	s.logger.Info("Order cancelled",
		zap.String("user_id", userID.String()),
		zap.String("order_id", orderID.String()))

	return nil
}

// Invoice returns the billing summary for the user's order
func (s *OrderService) Invoice(ctx context.Context, userID, orderID uuid.UUID) (*InvoiceResult, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user for invoice",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build invoice")
	}

	return &InvoiceResult{
		Order:         order,
		CustomerName:  user.Name,
		CustomerPhone: user.Phone,
	}, nil
}

// Dashboard returns the customer's name and order statistics
func (s *OrderService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	stats, err := s.orderRepo.StatsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load order stats",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load dashboard")
	}

	return &DashboardResult{
		Name:  user.Name,
		Stats: *stats,
	}, nil
}
