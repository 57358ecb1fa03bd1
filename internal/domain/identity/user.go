package identity

import (
	"regexp"
	"strings"

	"github.com/freshfold/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\- ]{4,19}$`)

// User represents a registered customer.
// The phone number is the login identifier and is unique across users.
type User struct {
	shared.BaseEntity
	Name         string `gorm:"size:200;not null"`
	Phone        string `gorm:"size:20;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a hashed password
func NewUser(name, phone, password string) (*User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Phone:        phone,
		PasswordHash: passwordHash,
	}, nil
}

// VerifyPassword verifies if the provided password matches.
// bcrypt's comparison is constant-time.
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must be 5 to 20 digits")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
