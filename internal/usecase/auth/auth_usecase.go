package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository

	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
	accessExpiry time.Duration,
	refreshExpiry time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Username  string        `json:"username" binding:"required,min=3,max=32"`
	Password  string        `json:"password" binding:"required,min=8,max=72"`
	Nickname  string        `json:"nickname" binding:"required,min=2,max=32"`
	Gender    domain.Gender `json:"gender" binding:"omitempty,oneof=man woman"`
	Birthyear *int          `json:"birthyear" binding:"omitempty,min=1900,max=2100"`
	Region1   string        `json:"region1" binding:"omitempty,max=32"`
	Region2   string        `json:"region2" binding:"omitempty,max=32"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token pair
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// Register creates a user with default search settings and logs them in.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if _, err := uc.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Nickname:     req.Nickname,
		PasswordHash: string(hash),
		Gender:       req.Gender,
		Birthyear:    req.Birthyear,
		Region1:      req.Region1,
		Region2:      req.Region2,

		// New accounts search wide open.
		SearchPreference: domain.Wildcard,
		SearchMarriage:   domain.Wildcard,

		DisconnectLocalContacts: domain.SwitchOff,
		ReceiveOff:              domain.SwitchOff,
		OnlyWithPhoto:           domain.SwitchOff,
		MatchPremiumOnly:        domain.SwitchOff,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return uc.issueTokens(ctx, user)
}

// Login verifies credentials and issues a fresh token pair.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issueTokens(ctx, user)
}

// Refresh rotates a refresh token and issues a new access token.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	session, err := uc.sessionRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = uc.sessionRepo.Delete(ctx, refreshToken)
		return nil, domain.ErrSessionNotFound
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	return uc.issueTokens(ctx, user)
}

// Logout invalidates one refresh token.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.sessionRepo.Delete(ctx, refreshToken)
}

// ValidateToken parses an access token and returns the user ID inside.
func (uc *AuthUseCase) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user_id claim")
	}
	return int64(userID), nil
}

func (uc *AuthUseCase) issueTokens(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	expiresAt := time.Now().Add(uc.accessExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	accessToken, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &domain.Session{
		UserID:       user.ID,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(uc.refreshExpiry),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
