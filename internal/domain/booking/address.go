package booking

import (
	"strings"

	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Address is a saved delivery address owned by a user.
// Addresses are created via an explicit save action and removed only by
// cascading user deletion.
type Address struct {
	shared.BaseEntity
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Label   string    `gorm:"size:100;not null"`
	Address string    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a saved address for a user
func NewAddress(userID uuid.UUID, label, address string) (*Address, error) {
	label = strings.TrimSpace(label)
	address = strings.TrimSpace(address)

	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if label == "" || address == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Address label and address are required")
	}
	if len(label) > 100 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label cannot exceed 100 characters")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Label:      label,
		Address:    address,
	}, nil
}
