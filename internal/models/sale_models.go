package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a transaction owned by a staff member. TotalAmount is derived:
// it always equals the sum of the child line subtotals and is recomputed
// by the service layer after every line mutation, never set directly.
type Sale struct {
	ID          int64           `json:"sale_id" db:"sale_id"`
	StaffID     int64           `json:"staff_id" db:"staff_id"`
	SaleDate    string          `json:"sale_date" db:"sale_date"` // YYYY-MM-DD
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
	StaffName   *string         `json:"staff_name,omitempty"`
	SaleItems   []SaleItem      `json:"sale_items"`
}

// SaleItem is one line of a sale. Subtotal is quantity times the item's
// price frozen at the moment the line was written; it is never taken from
// client input.
type SaleItem struct {
	ID       int64           `json:"sale_item_id" db:"sale_item_id"`
	SaleID   int64           `json:"sale_id" db:"sale_id"`
	ItemID   int64           `json:"item_id" db:"item_id"`
	ItemName string          `json:"item_name,omitempty"`
	Quantity int             `json:"quantity" db:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// SaleFilters defines the available filters for listing sales.
type SaleFilters struct {
	StaffID  *int64  `form:"staff_id"`
	Date     *string `form:"date"` // YYYY-MM-DD
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// SalesSummaryRow is one aggregate row of the sales summary report.
type SalesSummaryRow struct {
	SaleDate   string          `json:"sale_date"`
	SalesCount int             `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}
