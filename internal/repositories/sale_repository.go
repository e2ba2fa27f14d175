package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coffee_pos_backend/internal/models"

	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale and sale-line database
// operations. Line mutations take an SQLExecutor so the service layer can run
// them inside the same transaction as the matching stock adjustments.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	GetSaleByID(executor SQLExecutor, id int64) (*models.Sale, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
	DeleteSale(executor SQLExecutor, id int64) error

	CreateSaleItem(executor SQLExecutor, line *models.SaleItem) (int64, error)
	GetSaleItems(executor SQLExecutor, saleID int64) ([]models.SaleItem, error)
	GetSaleItemByID(executor SQLExecutor, saleID, lineID int64) (*models.SaleItem, error)
	GetSaleItemForItem(executor SQLExecutor, saleID, itemID int64) (*models.SaleItem, error)
	UpdateSaleItem(executor SQLExecutor, line *models.SaleItem) error
	DeleteSaleItem(executor SQLExecutor, lineID int64) error
	DeleteSaleItemsBySaleID(executor SQLExecutor, saleID int64) error

	// RecomputeTotal re-sums the current line subtotals into the sale's
	// total_amount and returns the persisted value.
	RecomputeTotal(executor SQLExecutor, saleID int64) (decimal.Decimal, error)

	CountSalesByStaff(staffID int64) (int, error)
	GetSalesSummary() ([]models.SalesSummaryRow, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (staff_id, sale_date, total_amount, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING sale_id`
	now := time.Now()
	err := executor.QueryRow(query, sale.StaffID, sale.SaleDate, sale.TotalAmount, now, now).Scan(&sale.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) GetSaleByID(executor SQLExecutor, id int64) (*models.Sale, error) {
	if executor == nil {
		executor = r.db
	}
	sale := &models.Sale{}
	query := `SELECT sale_id, staff_id, CAST(sale_date AS TEXT), total_amount, created_at, updated_at
	          FROM sales WHERE sale_id = $1`
	err := executor.QueryRow(query, id).Scan(
		&sale.ID, &sale.StaffID, &sale.SaleDate, &sale.TotalAmount, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, id, err)
	}
	return sale, nil
}

func (r *saleRepository) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	sales := []models.Sale{}
	totalCount := 0

	query := `SELECT s.sale_id, s.staff_id, CAST(s.sale_date AS TEXT), s.total_amount,
	                 s.created_at, s.updated_at, u.username,
	                 COUNT(*) OVER() AS total_count
	          FROM sales s
	          JOIN users u ON u.user_id = s.staff_id`
	args := []interface{}{}
	conditions := ""
	argPos := 1
	if filters.StaffID != nil {
		conditions += fmt.Sprintf(" WHERE s.staff_id = $%d", argPos)
		args = append(args, *filters.StaffID)
		argPos++
	}
	if filters.Date != nil {
		if conditions == "" {
			conditions += fmt.Sprintf(" WHERE CAST(s.sale_date AS TEXT) = $%d", argPos)
		} else {
			conditions += fmt.Sprintf(" AND CAST(s.sale_date AS TEXT) = $%d", argPos)
		}
		args = append(args, *filters.Date)
		argPos++
	}
	query += conditions + fmt.Sprintf(" ORDER BY s.sale_id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale models.Sale
		var staffName string
		if err := rows.Scan(&sale.ID, &sale.StaffID, &sale.SaleDate, &sale.TotalAmount,
			&sale.CreatedAt, &sale.UpdatedAt, &staffName, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sale.StaffName = &staffName
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, totalCount, nil
}

func (r *saleRepository) DeleteSale(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM sales WHERE sale_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting sale ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepository) CreateSaleItem(executor SQLExecutor, line *models.SaleItem) (int64, error) {
	query := `INSERT INTO sale_items (sale_id, item_id, quantity, subtotal)
	          VALUES ($1, $2, $3, $4)
	          RETURNING sale_item_id`
	err := executor.QueryRow(query, line.SaleID, line.ItemID, line.Quantity, line.Subtotal).Scan(&line.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating sale item (sale %d, item %d): %v", ErrDatabaseError, line.SaleID, line.ItemID, err)
	}
	return line.ID, nil
}

func (r *saleRepository) GetSaleItems(executor SQLExecutor, saleID int64) ([]models.SaleItem, error) {
	if executor == nil {
		executor = r.db
	}
	query := `SELECT si.sale_item_id, si.sale_id, si.item_id, i.item_name, si.quantity, si.subtotal
	          FROM sale_items si
	          JOIN items i ON i.item_id = si.item_id
	          WHERE si.sale_id = $1
	          ORDER BY si.sale_item_id`
	rows, err := executor.Query(query, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting sale items for sale %d: %v", ErrDatabaseError, saleID, err)
	}
	defer rows.Close()

	lines := []models.SaleItem{}
	for rows.Next() {
		var line models.SaleItem
		if err := rows.Scan(&line.ID, &line.SaleID, &line.ItemID, &line.ItemName, &line.Quantity, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("%w: scanning sale item: %v", ErrDatabaseError, err)
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale items: %v", ErrDatabaseError, err)
	}
	return lines, nil
}

func (r *saleRepository) GetSaleItemByID(executor SQLExecutor, saleID, lineID int64) (*models.SaleItem, error) {
	if executor == nil {
		executor = r.db
	}
	line := &models.SaleItem{}
	query := `SELECT sale_item_id, sale_id, item_id, quantity, subtotal
	          FROM sale_items WHERE sale_item_id = $1 AND sale_id = $2`
	err := executor.QueryRow(query, lineID, saleID).Scan(
		&line.ID, &line.SaleID, &line.ItemID, &line.Quantity, &line.Subtotal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale item %d of sale %d: %v", ErrDatabaseError, lineID, saleID, err)
	}
	return line, nil
}

func (r *saleRepository) GetSaleItemForItem(executor SQLExecutor, saleID, itemID int64) (*models.SaleItem, error) {
	if executor == nil {
		executor = r.db
	}
	line := &models.SaleItem{}
	query := `SELECT sale_item_id, sale_id, item_id, quantity, subtotal
	          FROM sale_items WHERE sale_id = $1 AND item_id = $2`
	err := executor.QueryRow(query, saleID, itemID).Scan(
		&line.ID, &line.SaleID, &line.ItemID, &line.Quantity, &line.Subtotal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale item for item %d of sale %d: %v", ErrDatabaseError, itemID, saleID, err)
	}
	return line, nil
}

func (r *saleRepository) UpdateSaleItem(executor SQLExecutor, line *models.SaleItem) error {
	query := `UPDATE sale_items SET quantity = $1, subtotal = $2 WHERE sale_item_id = $3`
	result, err := executor.Exec(query, line.Quantity, line.Subtotal, line.ID)
	if err != nil {
		return fmt.Errorf("%w: updating sale item %d: %v", ErrDatabaseError, line.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepository) DeleteSaleItem(executor SQLExecutor, lineID int64) error {
	result, err := executor.Exec(`DELETE FROM sale_items WHERE sale_item_id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("%w: deleting sale item %d: %v", ErrDatabaseError, lineID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepository) DeleteSaleItemsBySaleID(executor SQLExecutor, saleID int64) error {
	_, err := executor.Exec(`DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("%w: deleting sale items for sale %d: %v", ErrDatabaseError, saleID, err)
	}
	return nil
}

func (r *saleRepository) RecomputeTotal(executor SQLExecutor, saleID int64) (decimal.Decimal, error) {
	query := `UPDATE sales
	          SET total_amount = (SELECT COALESCE(SUM(subtotal), 0) FROM sale_items WHERE sale_id = $1),
	              updated_at = $2
	          WHERE sale_id = $3
	          RETURNING total_amount`
	var total decimal.Decimal
	err := executor.QueryRow(query, saleID, time.Now(), saleID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("%w: recomputing total for sale %d: %v", ErrDatabaseError, saleID, err)
	}
	return total, nil
}

func (r *saleRepository) CountSalesByStaff(staffID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sales WHERE staff_id = $1`, staffID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting sales for staff %d: %v", ErrDatabaseError, staffID, err)
	}
	return count, nil
}

func (r *saleRepository) GetSalesSummary() ([]models.SalesSummaryRow, error) {
	query := `SELECT CAST(sale_date AS TEXT), COUNT(*), COALESCE(SUM(total_amount), 0)
	          FROM sales
	          GROUP BY sale_date
	          ORDER BY sale_date DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting sales summary: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	summary := []models.SalesSummaryRow{}
	for rows.Next() {
		var row models.SalesSummaryRow
		if err := rows.Scan(&row.SaleDate, &row.SalesCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning sales summary row: %v", ErrDatabaseError, err)
		}
		summary = append(summary, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales summary: %v", ErrDatabaseError, err)
	}
	return summary, nil
}
