package auth

import (
	"fmt"
	"time"

	"team-task-backend/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds the token and password hashing settings
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" json:"jwt_secret"`
	JWTIssuer     string        `yaml:"jwt_issuer" json:"jwt_issuer"`
	JWTExpiration time.Duration `yaml:"jwt_expiration" json:"jwt_expiration"`
	BcryptCost    int           `yaml:"bcrypt_cost" json:"bcrypt_cost"`
}

// NewAuthConfig extracts the authentication settings from the application config
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		JWTIssuer:     cfg.JWTIssuer,
		JWTExpiration: cfg.JWTExpiration,
		BcryptCost:    cfg.BcryptCost,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT expiration must be positive")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}
