package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks request payloads that fail validation before reaching
// any business logic.
var ErrValidation = errors.New("validation failed")

// InsufficientStockError reports a stock reservation that could not be
// applied. Available is the quantity on hand at the time of the attempt so a
// caller can retry with a corrected request.
type InsufficientStockError struct {
	ItemID    int64
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s (item %d): requested %d, available %d",
		e.ItemName, e.ItemID, e.Requested, e.Available)
}

// ItemNotFoundError reports a sale line referencing an unknown item.
type ItemNotFoundError struct {
	ItemID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// SaleNotFoundError reports an operation against an unknown sale.
type SaleNotFoundError struct {
	SaleID int64
}

func (e *SaleNotFoundError) Error() string {
	return fmt.Sprintf("sale %d not found", e.SaleID)
}

// SaleLineNotFoundError reports an operation against an unknown sale line.
type SaleLineNotFoundError struct {
	SaleID     int64
	SaleItemID int64
}

func (e *SaleLineNotFoundError) Error() string {
	return fmt.Sprintf("sale item %d not found in sale %d", e.SaleItemID, e.SaleID)
}

// InvalidQuantityError reports a quantity that is zero or negative where a
// positive value is required. Zero is accepted only on the update path, where
// it means "remove this line".
type InvalidQuantityError struct {
	Value int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be a positive integer", e.Value)
}
