package handler

import "time"

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the request body for customer registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100" example:"Ayesha Rahman"`
	Phone    string `json:"phone" binding:"required,min=6,max=20" example:"01712345678"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the request body for customer login
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required" example:"01712345678"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest represents the request body for operator panel login
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RegisterResponse represents the response body for successful registration
type RegisterResponse struct {
	User AuthUserResponse `json:"user"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// AdminLoginResponse represents the response body for successful operator login
type AdminLoginResponse struct {
	Token    TokenResponse `json:"token"`
	Username string        `json:"username"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}
