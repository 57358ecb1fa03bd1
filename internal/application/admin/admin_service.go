package admin

import (
	"context"
	"fmt"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService backs the operator panel with the full order listing,
// the revenue summary and status updates.
type AdminService struct {
	orderRepo booking.OrderRepository
	logger    *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(orderRepo booking.OrderRepository, logger *zap.Logger) *AdminService {
	return &AdminService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// ListOrders returns all orders joined with customer phones, newest first
func (s *AdminService) ListOrders(ctx context.Context) ([]booking.AdminOrderView, error) {
	orders, err := s.orderRepo.FindAllWithUserPhone(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders for admin", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load orders")
	}
	return orders, nil
}

// Stats returns order counts and revenue across all users
func (s *AdminService) Stats(ctx context.Context) (*booking.AdminOrderStats, error) {
	stats, err := s.orderRepo.AdminStats(ctx)
	if err != nil {
		s.logger.Error("Failed to load admin stats", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load stats")
	}
	return stats, nil
}

// UpdateStatus moves an order to a new status. The target is validated
// against the closed status set before touching storage, so free-text
// values are rejected regardless of the order's existence.
func (s *AdminService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	target := booking.OrderStatus(status)
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Unknown order status %q", status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		return err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", status))

	return nil
}
