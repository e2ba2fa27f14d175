package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"
	"coffee_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid staff role")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// --- Data Transfer Objects (DTOs) ---

// RegisterStaffRequest is the Manager-only staff account creation payload.
type RegisterStaffRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	Email       string  `json:"email" binding:"required,email"`
	IDNumber    *string `json:"id_number"`
	HireDate    *string `json:"hire_date"`
	Username    string  `json:"username" binding:"required"`
	Password    string  `json:"password" binding:"required,min=8"`
	Role        string  `json:"role" binding:"required"`
}

// AuthResponse is returned on successful login or token refresh.
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---

type AuthService interface {
	Login(creds models.Credentials) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
	RegisterStaff(req RegisterStaffRequest) (*models.User, error)
	GetProfile(userID int64) (*models.User, error)
}

type authService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(sr repositories.StaffRepository, db *sql.DB) AuthService {
	return &authService{staffRepo: sr, db: db}
}

func (s *authService) Login(creds models.Credentials) (*AuthResponse, error) {
	user, err := s.staffRepo.GetUserByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.staffRepo.GetUserByID(nil, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

func (s *authService) RegisterStaff(req RegisterStaffRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Email:        strings.ToLower(req.Email),
		IDNumber:     req.IDNumber,
		HireDate:     req.HireDate,
		Username:     req.Username,
		PasswordHash: string(hashedPasswordBytes),
		Role:         role,
		IsActive:     true,
	}
	if _, err := s.staffRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			msg := err.Error()
			if strings.Contains(msg, "email") {
				return nil, ErrEmailExists
			}
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}
	return user, nil
}

func (s *authService) GetProfile(userID int64) (*models.User, error) {
	user, err := s.staffRepo.GetUserByID(nil, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}
