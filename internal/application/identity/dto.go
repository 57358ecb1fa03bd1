package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for customer registration
type RegisterInput struct {
	Name     string
	Phone    string
	Password string
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	User UserInfo
}

// LoginInput contains the input for customer login
type LoginInput struct {
	Phone    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID    uuid.UUID
	Name  string
	Phone string
}

// AdminLoginInput contains the input for operator panel login
type AdminLoginInput struct {
	Username string
	Password string
}

// AdminLoginResult contains the result of a successful operator login
type AdminLoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Username              string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string
	ExpiresAt time.Time
}

// GetProfileInput contains the input for fetching the current user's profile
type GetProfileInput struct {
	UserID uuid.UUID
}

// ProfileResult contains the current user's profile
type ProfileResult struct {
	User UserInfo
}
