package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coffee_pos_backend/internal/models"

	"github.com/lib/pq"
)

// ItemRepository defines the interface for catalog item database operations.
// Stock mutations are exposed only as a conditional decrement and a guarded
// increment so that concurrent sales serialize on the quantity column instead
// of racing through read-then-write sequences.
type ItemRepository interface {
	CreateItem(executor SQLExecutor, item *models.Item) (int64, error)
	GetItemByID(executor SQLExecutor, id int64) (*models.Item, error)
	GetItems(filters models.ItemFilters) ([]models.Item, int, error)
	UpdateItem(executor SQLExecutor, item *models.Item) error
	DeactivateItem(executor SQLExecutor, id int64) error

	// TryDecrementStock applies "quantity = quantity - qty" only when at least
	// qty units are on hand. It reports whether the decrement was applied.
	TryDecrementStock(executor SQLExecutor, itemID int64, qty int) (bool, error)

	// AdjustStock adds delta (positive to release stock back) and returns the
	// new quantity. The update is guarded so quantity can never go negative.
	AdjustStock(executor SQLExecutor, itemID int64, delta int) (int, error)
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) CreateItem(executor SQLExecutor, item *models.Item) (int64, error) {
	query := `INSERT INTO items (item_name, price, quantity, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING item_id`
	now := time.Now()
	err := executor.QueryRow(query, item.Name, item.Price, item.Quantity, item.IsActive, now, now).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: item name '%s' already exists", ErrDuplicateKey, item.Name)
		}
		return 0, fmt.Errorf("%w: creating item: %v", ErrDatabaseError, err)
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return item.ID, nil
}

func (r *itemRepository) GetItemByID(executor SQLExecutor, id int64) (*models.Item, error) {
	if executor == nil {
		executor = r.db
	}
	item := &models.Item{}
	query := `SELECT item_id, item_name, price, quantity, is_active, created_at, updated_at
	          FROM items WHERE item_id = $1`
	err := executor.QueryRow(query, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Quantity, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *itemRepository) GetItems(filters models.ItemFilters) ([]models.Item, int, error) {
	items := []models.Item{}
	totalCount := 0

	query := `SELECT item_id, item_name, price, quantity, is_active, created_at, updated_at,
	                 COUNT(*) OVER() AS total_count
	          FROM items`
	if !filters.IncludeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY item_name LIMIT $1 OFFSET $2`

	offset := (filters.Page - 1) * filters.PageSize
	rows, err := r.db.Query(query, filters.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating items: %v", ErrDatabaseError, err)
	}
	return items, totalCount, nil
}

func (r *itemRepository) UpdateItem(executor SQLExecutor, item *models.Item) error {
	query := `UPDATE items SET item_name = $1, price = $2, quantity = $3, is_active = $4, updated_at = $5
	          WHERE item_id = $6`
	result, err := executor.Exec(query, item.Name, item.Price, item.Quantity, item.IsActive, time.Now(), item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: item name '%s' already exists", ErrDuplicateKey, item.Name)
		}
		return fmt.Errorf("%w: updating item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) DeactivateItem(executor SQLExecutor, id int64) error {
	query := `UPDATE items SET is_active = FALSE, updated_at = $1 WHERE item_id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) TryDecrementStock(executor SQLExecutor, itemID int64, qty int) (bool, error) {
	query := `UPDATE items SET quantity = quantity - $1, updated_at = $2
	          WHERE item_id = $3 AND quantity >= $4`
	result, err := executor.Exec(query, qty, time.Now(), itemID, qty)
	if err != nil {
		return false, fmt.Errorf("%w: decrementing stock for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: reading rows affected for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return rowsAffected > 0, nil
}

func (r *itemRepository) AdjustStock(executor SQLExecutor, itemID int64, delta int) (int, error) {
	query := `UPDATE items SET quantity = quantity + $1, updated_at = $2
	          WHERE item_id = $3 AND quantity + $4 >= 0`
	result, err := executor.Exec(query, delta, time.Now(), itemID, delta)
	if err != nil {
		return 0, fmt.Errorf("%w: adjusting stock for item ID %d by %d: %v", ErrDatabaseError, itemID, delta, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}

	var newQty int
	err = executor.QueryRow(`SELECT quantity FROM items WHERE item_id = $1`, itemID).Scan(&newQty)
	if err != nil {
		return 0, fmt.Errorf("%w: reading stock for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return newQty, nil
}
