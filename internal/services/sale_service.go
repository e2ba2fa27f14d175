package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- Data Transfer Objects (DTOs) ---

// SaleLineRequest is a single (item, quantity) pair proposed by a client.
// Prices and subtotals are never accepted from the client; they are always
// recomputed from the item's current price.
type SaleLineRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

// CreateSaleRequest is used for creating a new sale with its lines.
type CreateSaleRequest struct {
	SaleDate  string            `json:"sale_date"` // YYYY-MM-DD, defaults to today
	SaleItems []SaleLineRequest `json:"sale_items" binding:"required,dive"`
}

// UpdateSaleLinesRequest proposes a new set of (item, quantity) pairs for an
// existing sale. A quantity of zero removes the matching line.
type UpdateSaleLinesRequest struct {
	SaleItems []SaleLineRequest `json:"sale_items" binding:"required,dive"`
}

// SalesHistory summarizes the sales of one staff member.
type SalesHistory struct {
	StaffID    int64         `json:"staff_id"`
	SalesCount int           `json:"sales_count"`
	Sales      []models.Sale `json:"sales"`
}

// --- SaleService Interface ---

// SaleService owns the sale line reconciliation logic: every mutation of a
// sale's lines and the matching stock adjustments execute inside a single
// transaction, and the sale total is recomputed as the final step before
// commit. Rolling back the transaction releases every reservation made
// earlier in the same call, so a failed batch never partially applies.
type SaleService interface {
	CreateSale(staffID int64, req CreateSaleRequest) (*models.Sale, error)
	UpdateSaleLines(saleID int64, req UpdateSaleLinesRequest) (*models.Sale, error)
	DeleteSale(saleID int64) error
	DeleteSaleLine(saleID, lineID int64) error

	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, int, error)
	GetSalesHistory(staffID int64) (*SalesHistory, error)
	GetSalesSummary() ([]models.SalesSummaryRow, error)
}

type saleService struct {
	saleRepo repositories.SaleRepository
	itemRepo repositories.ItemRepository
	db       *sql.DB // For managing transactions.
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(sr repositories.SaleRepository, ir repositories.ItemRepository, db *sql.DB) SaleService {
	return &saleService{
		saleRepo: sr,
		itemRepo: ir,
		db:       db,
	}
}

// reserve conditionally decrements qty units of the item's stock inside tx.
// The decrement is a single guarded UPDATE, so two concurrent reservations
// against the same item serialize on the row instead of racing.
func (s *saleService) reserve(tx *sql.Tx, itemID int64, qty int) (*models.Item, error) {
	item, err := s.itemRepo.GetItemByID(tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ItemNotFoundError{ItemID: itemID}
		}
		return nil, fmt.Errorf("fetching item %d: %w", itemID, err)
	}

	applied, err := s.itemRepo.TryDecrementStock(tx, itemID, qty)
	if err != nil {
		return nil, fmt.Errorf("reserving stock for item %d: %w", itemID, err)
	}
	if !applied {
		return nil, &InsufficientStockError{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Available: item.Quantity,
			Requested: qty,
		}
	}
	return item, nil
}

// release returns qty units of stock to the item.
func (s *saleService) release(tx *sql.Tx, itemID int64, qty int) error {
	if qty == 0 {
		return nil
	}
	if _, err := s.itemRepo.AdjustStock(tx, itemID, qty); err != nil {
		return fmt.Errorf("releasing %d units of item %d: %w", qty, itemID, err)
	}
	return nil
}

func subtotalFor(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

func validateNoDuplicateItems(lines []SaleLineRequest) error {
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if seen[line.ItemID] {
			return fmt.Errorf("%w: item %d appears more than once", ErrValidation, line.ItemID)
		}
		seen[line.ItemID] = true
	}
	return nil
}

func (s *saleService) CreateSale(staffID int64, req CreateSaleRequest) (*models.Sale, error) {
	if len(req.SaleItems) == 0 {
		return nil, fmt.Errorf("%w: sale must contain at least one line", ErrValidation)
	}
	if err := validateNoDuplicateItems(req.SaleItems); err != nil {
		return nil, err
	}

	saleDate := req.SaleDate
	if saleDate == "" {
		saleDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", saleDate); err != nil {
		return nil, fmt.Errorf("%w: sale_date must be YYYY-MM-DD", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	sale := &models.Sale{
		StaffID:     staffID,
		SaleDate:    saleDate,
		TotalAmount: decimal.Zero,
	}
	if _, err := s.saleRepo.CreateSale(tx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	for _, lineReq := range req.SaleItems {
		if lineReq.Quantity <= 0 {
			return nil, &InvalidQuantityError{Value: lineReq.Quantity}
		}
		item, err := s.reserve(tx, lineReq.ItemID, lineReq.Quantity)
		if err != nil {
			return nil, err
		}
		line := &models.SaleItem{
			SaleID:   sale.ID,
			ItemID:   item.ID,
			Quantity: lineReq.Quantity,
			Subtotal: subtotalFor(item.Price, lineReq.Quantity),
		}
		if _, err := s.saleRepo.CreateSaleItem(tx, line); err != nil {
			return nil, fmt.Errorf("failed to create sale line for item %d: %w", item.ID, err)
		}
	}

	if _, err := s.saleRepo.RecomputeTotal(tx, sale.ID); err != nil {
		return nil, fmt.Errorf("failed to recompute sale total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}

	return s.GetSaleByID(sale.ID)
}

func (s *saleService) UpdateSaleLines(saleID int64, req UpdateSaleLinesRequest) (*models.Sale, error) {
	if len(req.SaleItems) == 0 {
		return nil, fmt.Errorf("%w: update must propose at least one line", ErrValidation)
	}
	if err := validateNoDuplicateItems(req.SaleItems); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.saleRepo.GetSaleByID(tx, saleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &SaleNotFoundError{SaleID: saleID}
		}
		return nil, fmt.Errorf("failed to fetch sale %d: %w", saleID, err)
	}

	for _, lineReq := range req.SaleItems {
		if lineReq.Quantity < 0 {
			return nil, &InvalidQuantityError{Value: lineReq.Quantity}
		}

		existing, err := s.saleRepo.GetSaleItemForItem(tx, saleID, lineReq.ItemID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch existing line for item %d: %w", lineReq.ItemID, err)
		}

		// Quantity zero means "remove this line": release its full
		// reservation and drop the record. Removing a line that does not
		// exist is a no-op so repeated updates stay idempotent.
		if lineReq.Quantity == 0 {
			if existing == nil {
				continue
			}
			if err := s.release(tx, existing.ItemID, existing.Quantity); err != nil {
				return nil, err
			}
			if err := s.saleRepo.DeleteSaleItem(tx, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to delete sale line %d: %w", existing.ID, err)
			}
			continue
		}

		item, err := s.itemRepo.GetItemByID(tx, lineReq.ItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &ItemNotFoundError{ItemID: lineReq.ItemID}
			}
			return nil, fmt.Errorf("failed to fetch item %d: %w", lineReq.ItemID, err)
		}

		currentQty := 0
		if existing != nil {
			currentQty = existing.Quantity
		}
		delta := lineReq.Quantity - currentQty

		switch {
		case delta > 0:
			applied, err := s.itemRepo.TryDecrementStock(tx, item.ID, delta)
			if err != nil {
				return nil, fmt.Errorf("reserving stock for item %d: %w", item.ID, err)
			}
			if !applied {
				return nil, &InsufficientStockError{
					ItemID:    item.ID,
					ItemName:  item.Name,
					Available: item.Quantity,
					Requested: delta,
				}
			}
		case delta < 0:
			if err := s.release(tx, item.ID, -delta); err != nil {
				return nil, err
			}
		}

		// The subtotal is always restamped from the item's current price,
		// never taken from the request.
		subtotal := subtotalFor(item.Price, lineReq.Quantity)
		if existing == nil {
			line := &models.SaleItem{
				SaleID:   saleID,
				ItemID:   item.ID,
				Quantity: lineReq.Quantity,
				Subtotal: subtotal,
			}
			if _, err := s.saleRepo.CreateSaleItem(tx, line); err != nil {
				return nil, fmt.Errorf("failed to create sale line for item %d: %w", item.ID, err)
			}
		} else {
			existing.Quantity = lineReq.Quantity
			existing.Subtotal = subtotal
			if err := s.saleRepo.UpdateSaleItem(tx, existing); err != nil {
				return nil, fmt.Errorf("failed to update sale line %d: %w", existing.ID, err)
			}
		}
	}

	if _, err := s.saleRepo.RecomputeTotal(tx, saleID); err != nil {
		return nil, fmt.Errorf("failed to recompute sale total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale update transaction: %w", err)
	}

	return s.GetSaleByID(saleID)
}

func (s *saleService) DeleteSale(saleID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.saleRepo.GetSaleByID(tx, saleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &SaleNotFoundError{SaleID: saleID}
		}
		return fmt.Errorf("failed to fetch sale %d: %w", saleID, err)
	}

	lines, err := s.saleRepo.GetSaleItems(tx, saleID)
	if err != nil {
		return fmt.Errorf("failed to fetch sale lines for release: %w", err)
	}
	for _, line := range lines {
		if err := s.release(tx, line.ItemID, line.Quantity); err != nil {
			return err
		}
	}

	if err := s.saleRepo.DeleteSaleItemsBySaleID(tx, saleID); err != nil {
		return fmt.Errorf("failed to delete sale lines: %w", err)
	}
	if err := s.saleRepo.DeleteSale(tx, saleID); err != nil {
		return fmt.Errorf("failed to delete sale %d: %w", saleID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale deletion: %w", err)
	}
	return nil
}

func (s *saleService) DeleteSaleLine(saleID, lineID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	line, err := s.saleRepo.GetSaleItemByID(tx, saleID, lineID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &SaleLineNotFoundError{SaleID: saleID, SaleItemID: lineID}
		}
		return fmt.Errorf("failed to fetch sale line %d: %w", lineID, err)
	}

	if err := s.release(tx, line.ItemID, line.Quantity); err != nil {
		return err
	}
	if err := s.saleRepo.DeleteSaleItem(tx, line.ID); err != nil {
		return fmt.Errorf("failed to delete sale line %d: %w", line.ID, err)
	}
	if _, err := s.saleRepo.RecomputeTotal(tx, saleID); err != nil {
		return fmt.Errorf("failed to recompute sale total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale line deletion: %w", err)
	}
	return nil
}

func (s *saleService) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(nil, saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &SaleNotFoundError{SaleID: saleID}
		}
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}

	lines, err := s.saleRepo.GetSaleItems(nil, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale lines: %w", err)
	}
	sale.SaleItems = lines
	return sale, nil
}

func (s *saleService) GetSales(filters models.SaleFilters) ([]models.Sale, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	sales, totalCount, err := s.saleRepo.GetSales(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, totalCount, nil
}

func (s *saleService) GetSalesHistory(staffID int64) (*SalesHistory, error) {
	count, err := s.saleRepo.CountSalesByStaff(staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales for staff %d: %w", staffID, err)
	}
	sales, _, err := s.saleRepo.GetSales(models.SaleFilters{StaffID: &staffID, Page: 1, PageSize: 50})
	if err != nil {
		return nil, fmt.Errorf("failed to get sales for staff %d: %w", staffID, err)
	}
	return &SalesHistory{StaffID: staffID, SalesCount: count, Sales: sales}, nil
}

func (s *saleService) GetSalesSummary() ([]models.SalesSummaryRow, error) {
	summary, err := s.saleRepo.GetSalesSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}
	return summary, nil
}
