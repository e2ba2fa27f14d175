package services

import (
	"database/sql"
	"errors"
	"fmt"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNameExists = errors.New("item name already exists")
	ErrNegativePrice  = errors.New("price cannot be negative")
	ErrNegativeStock  = errors.New("stock quantity cannot be negative")
)

// --- Data Transfer Objects (DTOs) ---

// CreateItemRequest is used for creating a new catalog item.
type CreateItemRequest struct {
	Name     string          `json:"item_name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// UpdateItemRequest is used for editing an existing catalog item.
type UpdateItemRequest struct {
	Name     string          `json:"item_name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	IsActive bool            `json:"is_active"`
}

// --- ItemService Interface ---

type ItemService interface {
	CreateItem(req CreateItemRequest) (*models.Item, error)
	GetItemByID(id int64) (*models.Item, error)
	GetItems(filters models.ItemFilters) ([]models.Item, int, error)
	UpdateItem(id int64, req UpdateItemRequest) (*models.Item, error)
	DeactivateItem(id int64) error
}

type itemService struct {
	itemRepo repositories.ItemRepository
	db       *sql.DB
}

// NewItemService creates a new instance of ItemService.
func NewItemService(ir repositories.ItemRepository, db *sql.DB) ItemService {
	return &itemService{itemRepo: ir, db: db}
}

func validateItemFields(price decimal.Decimal, quantity int) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, price)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeStock, quantity)
	}
	return nil
}

func (s *itemService) CreateItem(req CreateItemRequest) (*models.Item, error) {
	if err := validateItemFields(req.Price, req.Quantity); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		IsActive: true,
	}
	if _, err := s.itemRepo.CreateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrItemNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (s *itemService) GetItemByID(id int64) (*models.Item, error) {
	item, err := s.itemRepo.GetItemByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ItemNotFoundError{ItemID: id}
		}
		return nil, fmt.Errorf("failed to get item by ID: %w", err)
	}
	return item, nil
}

func (s *itemService) GetItems(filters models.ItemFilters) ([]models.Item, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}
	items, totalCount, err := s.itemRepo.GetItems(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get items: %w", err)
	}
	return items, totalCount, nil
}

func (s *itemService) UpdateItem(id int64, req UpdateItemRequest) (*models.Item, error) {
	if err := validateItemFields(req.Price, req.Quantity); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemByID(nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ItemNotFoundError{ItemID: id}
		}
		return nil, fmt.Errorf("failed to fetch item for update: %w", err)
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Quantity = req.Quantity
	item.IsActive = req.IsActive
	if err := s.itemRepo.UpdateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrItemNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *itemService) DeactivateItem(id int64) error {
	if err := s.itemRepo.DeactivateItem(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ItemNotFoundError{ItemID: id}
		}
		return fmt.Errorf("failed to deactivate item: %w", err)
	}
	return nil
}
