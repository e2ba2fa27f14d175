package services

import (
	"database/sql"
	"errors"
	"fmt"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"
)

// --- Data Transfer Objects (DTOs) ---

// UpdateStaffRequest is used for editing an existing staff account.
// Credentials are not editable through this path.
type UpdateStaffRequest struct {
	FirstName       string  `json:"first_name" binding:"required"`
	LastName        string  `json:"last_name" binding:"required"`
	PhoneNumber     *string `json:"phone_number"`
	Email           string  `json:"email" binding:"required,email"`
	IDNumber        *string `json:"id_number"`
	HireDate        *string `json:"hire_date"`
	TerminationDate *string `json:"termination_date"`
	Role            string  `json:"role" binding:"required"`
	IsActive        bool    `json:"is_active"`
}

// --- StaffService Interface ---

type StaffService interface {
	GetStaffMembers(filters models.StaffFilters) ([]models.User, int, error)
	GetStaffMemberByID(id int64) (*models.User, error)
	UpdateStaffMember(id int64, req UpdateStaffRequest) (*models.User, error)
	DeactivateStaffMember(id int64) error
}

type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: sr, db: db}
}

func (s *staffService) GetStaffMembers(filters models.StaffFilters) ([]models.User, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	users, totalCount, err := s.staffRepo.GetUsers(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get staff members: %w", err)
	}
	return users, totalCount, nil
}

func (s *staffService) GetStaffMemberByID(id int64) (*models.User, error) {
	user, err := s.staffRepo.GetUserByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return user, nil
}

func (s *staffService) UpdateStaffMember(id int64, req UpdateStaffRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}

	user, err := s.staffRepo.GetUserByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member for update: %w", err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	user.Email = req.Email
	user.IDNumber = req.IDNumber
	user.HireDate = req.HireDate
	user.TerminationDate = req.TerminationDate
	user.Role = role
	user.IsActive = req.IsActive

	if err := s.staffRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return s.GetStaffMemberByID(id)
}

func (s *staffService) DeactivateStaffMember(id int64) error {
	if err := s.staffRepo.DeactivateUser(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to deactivate staff member: %w", err)
	}
	return nil
}
