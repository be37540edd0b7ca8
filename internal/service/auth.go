package service

import (
	"errors"
	"fmt"
	"strings"

	"team-task-backend/internal/database/models"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/logger"
	"team-task-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// AuthService handles registration and login
type AuthService struct {
	repo      repository.UserRepositoryInterface
	hasher    PasswordHasher
	tokens    TokenIssuer
	validator *validator.Validate
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.UserRepositoryInterface, hasher PasswordHasher, tokens TokenIssuer, validator *validator.Validate) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
	}
}

// RegisterRequest represents the data needed to create an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludes=@" example:"john_doe"`
	Email    string `json:"email" validate:"required,email,max=255" example:"john@example.com"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"secret123"`
}

// LoginRequest represents login credentials. Identifier is a username or an email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3" example:"john_doe"`
	Password   string `json:"password" validate:"required" example:"secret123"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type" example:"Bearer"`
	ExpiresIn   int64         `json:"expires_in" example:"86400"`
	User        *UserResponse `json:"user"`
}

// Register creates an account and signs the user in
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	username := req.Username
	email := req.Email

	if _, err := s.repo.GetByUsername(username); err == nil {
		return nil, apperrors.ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	}
	if err := s.repo.Create(user); err != nil {
		// Lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewAlreadyExistsError("user", "with this username or email")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.New().WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return s.issue(user)
}

// Login verifies credentials. Unknown users and wrong passwords get the same error.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsernameOrEmail(req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		logger.New().WithField("username", user.Username).Warn("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokens.ExpiresIn(),
		User:        toUserResponse(user),
	}, nil
}
