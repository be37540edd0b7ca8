package auth

import (
	"fmt"
	"time"

	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               string `json:"user_id" example:"6f1c2b9e-3a4d-4c6e-9b1a-2f3e4d5c6b7a"`
	Username             string `json:"username" example:"johndoe"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// ParsedUserID returns the user id carried by the token
func (c *AuthClaims) ParsedUserID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TokenService issues and verifies bearer tokens
type TokenService struct {
	config *AuthConfig
	now    func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(config *AuthConfig) (*TokenService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	return &TokenService{
		config: config,
		now:    time.Now,
	}, nil
}

// GenerateJWT creates a signed token for the user
func (s *TokenService) GenerateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := &AuthClaims{
		UserID:   user.ID.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.JWTIssuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *TokenService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if _, err := claims.ParsedUserID(); err != nil {
		return nil, fmt.Errorf("%w: malformed user_id claim", apperrors.ErrInvalidToken)
	}

	return claims, nil
}

// ExpiresIn returns the token lifetime in seconds
func (s *TokenService) ExpiresIn() int64 {
	return int64(s.config.JWTExpiration / time.Second)
}
