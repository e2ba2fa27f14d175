package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry with a price and an on-hand stock quantity.
// Items are soft-deactivated via IsActive and never hard-deleted, because
// historical sale lines keep referencing them.
type Item struct {
	ID        int64           `json:"item_id" db:"item_id"`
	Name      string          `json:"item_name" db:"item_name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	IsActive  bool            `json:"is_active" db:"is_active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ItemFilters defines the available filters for listing catalog items.
type ItemFilters struct {
	IncludeInactive bool `form:"include_inactive"`
	Page            int  `form:"page"`
	PageSize        int  `form:"page_size"`
}
