package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/freshfold/backend/internal/domain/identity"
	"github.com/freshfold/backend/internal/domain/shared"
	"github.com/freshfold/backend/internal/infrastructure/auth"
	"github.com/freshfold/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	adminCfg   config.AdminConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	adminCfg config.AdminConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		adminCfg:   adminCfg,
		logger:     logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	s.logger.Info("Registration attempt", zap.String("phone", input.Phone))

	user, err := identity.NewUser(input.Name, input.Phone, input.Password)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByPhone(ctx, user.Phone)
	if err != nil {
		s.logger.Error("Failed to check phone uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}
	if exists {
		s.logger.Warn("Registration with already used phone", zap.String("phone", user.Phone))
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Phone already registered")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent registration can slip past the existence check;
		// the unique constraint is the source of truth.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Phone already registered")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone))

	return &RegisterResult{
		User: UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Phone: user.Phone,
		},
	}, nil
}

// Login authenticates a customer by phone and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("phone", input.Phone))

	user, err := s.userRepo.FindByPhone(ctx, input.Phone)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("phone", input.Phone))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid phone or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("phone", input.Phone))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid phone or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Phone:  user.Phone,
		Name:   user.Name,
		Scope:  auth.ScopeCustomer,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("phone", user.Phone))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User: UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Phone: user.Phone,
		},
	}, nil
}

// AdminLogin authenticates an operator against the configured admin credential.
// Both comparisons run unconditionally to keep timing independent of which
// field mismatched.
func (s *AuthService) AdminLogin(ctx context.Context, input AdminLoginInput) (*AdminLoginResult, error) {
	s.logger.Info("Admin login attempt", zap.String("username", input.Username))

	userMatch := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.adminCfg.Username))
	passMatch := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.adminCfg.Password))
	if userMatch&passMatch != 1 {
		s.logger.Warn("Invalid admin credentials", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: adminSubjectID(s.adminCfg.Username),
		Name:   s.adminCfg.Username,
		Scope:  auth.ScopeAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate admin token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Admin logged in", zap.String("username", input.Username))

	return &AdminLoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Username:              s.adminCfg.Username,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Failed to check token blacklist", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
		if revoked {
			s.logger.Warn("Refresh attempt with revoked token", zap.String("jti", claims.ID))
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	// Customer tokens must still map to a live account
	if claims.Scope == auth.ScopeCustomer {
		userID, err := claims.GetUserUUID()
		if err != nil {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			s.logger.Warn("User not found during token refresh", zap.String("user_id", claims.UserID))
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	s.logger.Info("Token refreshed", zap.String("user_id", claims.UserID))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token until it expires on its own
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if s.blacklist == nil || input.TokenJTI == "" {
		return nil
	}

	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	return nil
}

// GetProfile retrieves the current user's account details
func (s *AuthService) GetProfile(ctx context.Context, input GetProfileInput) (*ProfileResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	return &ProfileResult{
		User: UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Phone: user.Phone,
		},
	}, nil
}

// adminSubjectID derives a stable subject UUID for the configured operator
func adminSubjectID(username string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("admin:"+username))
}
