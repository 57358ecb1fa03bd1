package persistence

import (
	"context"

	"github.com/freshfold/backend/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAddressRepository implements booking.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Create inserts a new saved address
func (r *GormAddressRepository) Create(ctx context.Context, address *booking.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// FindByUser returns all saved addresses for a user, newest first
func (r *GormAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]booking.Address, error) {
	var addresses []booking.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Ensure GormAddressRepository implements booking.AddressRepository
var _ booking.AddressRepository = (*GormAddressRepository)(nil)
