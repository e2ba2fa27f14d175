package models

import "time"

// Role is the closed set of staff roles known to the system.
type Role string

const (
	RoleSuperuser  Role = "Superuser"
	RoleManager    Role = "Manager"
	RoleWaiter     Role = "Waiter"
	RoleCashier    Role = "Cashier"
	RoleSupervisor Role = "Supervisor"
)

// ValidRoles lists every role accepted at registration time.
var ValidRoles = []Role{RoleSuperuser, RoleManager, RoleWaiter, RoleCashier, RoleSupervisor}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range ValidRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a staff member who can log in and operate the POS.
type User struct {
	ID              int64     `json:"user_id" db:"user_id"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	PhoneNumber     *string   `json:"phone_number,omitempty" db:"phone_number"`
	Email           string    `json:"email" db:"email"`
	IDNumber        *string   `json:"id_number,omitempty" db:"id_number"`
	HireDate        *string   `json:"hire_date,omitempty" db:"hire_date"` // YYYY-MM-DD
	TerminationDate *string   `json:"termination_date,omitempty" db:"termination_date"`
	Username        string    `json:"username" db:"username"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Role            Role      `json:"role" db:"role"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffFilters defines the available filters for listing staff accounts.
type StaffFilters struct {
	Role     *string `form:"role"`
	IsActive *bool   `form:"is_active"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
