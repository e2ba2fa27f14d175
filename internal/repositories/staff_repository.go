package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"coffee_pos_backend/internal/models"

	"github.com/lib/pq"
)

// StaffRepository defines the interface for staff account database operations.
type StaffRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(executor SQLExecutor, id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers(filters models.StaffFilters) ([]models.User, int, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	DeactivateUser(executor SQLExecutor, id int64) error
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const userColumns = `user_id, first_name, last_name, phone_number, email, id_number,
	CAST(hire_date AS TEXT), CAST(termination_date AS TEXT),
	username, password_hash, role, is_active, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.PhoneNumber, &user.Email,
		&user.IDNumber, &user.HireDate, &user.TerminationDate, &user.Username, &user.PasswordHash,
		&role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

func (r *staffRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users
	          (first_name, last_name, phone_number, email, id_number, hire_date, termination_date,
	           username, password_hash, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING user_id`
	now := time.Now()
	err := executor.QueryRow(query,
		user.FirstName, user.LastName, user.PhoneNumber, user.Email, user.IDNumber,
		user.HireDate, user.TerminationDate, user.Username, user.PasswordHash,
		string(user.Role), user.IsActive, now, now).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			switch {
			case strings.Contains(pqErr.Constraint, "username"):
				return 0, fmt.Errorf("%w: username '%s' already exists", ErrDuplicateKey, user.Username)
			case strings.Contains(pqErr.Constraint, "email"):
				return 0, fmt.Errorf("%w: email '%s' already exists", ErrDuplicateKey, user.Email)
			default:
				return 0, fmt.Errorf("%w: %v", ErrDuplicateKey, pqErr)
			}
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *staffRepository) GetUserByID(executor SQLExecutor, id int64) (*models.User, error) {
	if executor == nil {
		executor = r.db
	}
	user, err := scanUser(executor.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

func (r *staffRepository) GetUserByUsername(username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by username %q: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

func (r *staffRepository) GetUsers(filters models.StaffFilters) ([]models.User, int, error) {
	users := []models.User{}
	totalCount := 0

	query := `SELECT ` + userColumns + `, COUNT(*) OVER() AS total_count FROM users`
	args := []interface{}{}
	conditions := []string{}
	argPos := 1
	if filters.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argPos))
		args = append(args, *filters.Role)
		argPos++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY username LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		var role string
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.PhoneNumber, &user.Email,
			&user.IDNumber, &user.HireDate, &user.TerminationDate, &user.Username, &user.PasswordHash,
			&role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		user.Role = models.Role(role)
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating users: %v", ErrDatabaseError, err)
	}
	return users, totalCount, nil
}

func (r *staffRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET first_name = $1, last_name = $2, phone_number = $3, email = $4,
	              id_number = $5, hire_date = $6, termination_date = $7, role = $8, is_active = $9,
	              updated_at = $10
	          WHERE user_id = $11`
	result, err := executor.Exec(query,
		user.FirstName, user.LastName, user.PhoneNumber, user.Email, user.IDNumber,
		user.HireDate, user.TerminationDate, string(user.Role), user.IsActive, time.Now(), user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, pqErr)
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeactivateUser(executor SQLExecutor, id int64) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = $1 WHERE user_id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
