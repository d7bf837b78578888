package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/repositories"
	"membermgr_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrAuthValidation     = errors.New("auth data validation error")
)

// TokenPair carries the signed access and refresh tokens issued at login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(payload models.RegistrationPayload) (*models.User, error)
	Login(creds models.Credentials) (*models.User, *TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	GetCurrentUser(userID int64) (*models.User, error)
}

type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(repo repositories.AuthRepository, db *sql.DB) AuthService {
	return &authService{authRepo: repo, db: db}
}

// RegisterUser creates a back-office account with a bcrypt-hashed password.
func (s *authService) RegisterUser(payload models.RegistrationPayload) (*models.User, error) {
	if strings.TrimSpace(payload.Username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrAuthValidation)
	}
	if len(payload.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrAuthValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := "Staff"
	if payload.Role != nil && *payload.Role != "" {
		role = *payload.Role
	}

	user := &models.User{
		Username: payload.Username,
		Email:    payload.Email,
		FullName: payload.FullName,
		Role:     role,
		IsActive: true,
	}

	userID, err := s.authRepo.CreateUser(s.db, user, string(hashed))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	user.ID = userID
	return user, nil
}

// Login verifies the credentials and issues a token pair.
func (s *authService) Login(creds models.Credentials) (*models.User, *TokenPair, error) {
	user, hash, err := s.authRepo.FindUserByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken validates a refresh token and issues a fresh pair.
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.authRepo.FindUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user for refresh: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return s.issueTokens(user)
}

// GetCurrentUser returns the account behind a validated token.
func (s *authService) GetCurrentUser(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}

func (s *authService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
