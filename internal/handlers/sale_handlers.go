package handlers

import (
	"errors"
	"net/http"

	"coffee_pos_backend/internal/access"
	"coffee_pos_backend/internal/middleware"
	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// respondSaleError maps the reconciler's structured errors to HTTP responses.
// Insufficient stock names the item and its available quantity so the caller
// can retry with a corrected request.
func respondSaleError(c *gin.Context, err error, logContext string) {
	var insufficientStock *services.InsufficientStockError
	var itemNotFound *services.ItemNotFoundError
	var saleNotFound *services.SaleNotFoundError
	var lineNotFound *services.SaleLineNotFoundError
	var invalidQty *services.InvalidQuantityError

	switch {
	case errors.As(err, &insufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
			"Insufficient stock", err.Error()))
	case errors.As(err, &itemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Item not found", err.Error()))
	case errors.As(err, &saleNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Sale not found", err.Error()))
	case errors.As(err, &lineNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Sale line not found", err.Error()))
	case errors.As(err, &invalidQty), errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid sale data", err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Sale operation failed", ""))
	}
}

// CreateSale handles the creation of a new sale with its lines. The owning
// staff member is taken from the authenticated principal, never the payload.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	staffID, ok := middleware.StaffIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Not authenticated", ""))
		return
	}

	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	sale, err := h.saleService.CreateSale(staffID, req)
	if err != nil {
		respondSaleError(c, err, "CreateSale: Error from saleService.CreateSale")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// UpdateSaleLines reconciles an existing sale against a proposed line set.
func (h *SaleHandler) UpdateSaleLines(c *gin.Context) {
	saleID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid sale ID", err.Error()))
		return
	}

	var req services.UpdateSaleLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	sale, err := h.saleService.UpdateSaleLines(saleID, req)
	if err != nil {
		respondSaleError(c, err, "UpdateSaleLines: Error from saleService.UpdateSaleLines")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DeleteSale removes a sale and releases the stock of every child line.
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	saleID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid sale ID", err.Error()))
		return
	}

	if err := h.saleService.DeleteSale(saleID); err != nil {
		respondSaleError(c, err, "DeleteSale: Error from saleService.DeleteSale")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

// DeleteSaleLine removes one line from a sale, releasing its stock.
func (h *SaleHandler) DeleteSaleLine(c *gin.Context) {
	saleID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid sale ID", err.Error()))
		return
	}
	lineID, err := utils.StrToInt64(c.Param("lineID"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid sale line ID", err.Error()))
		return
	}

	if err := h.saleService.DeleteSaleLine(saleID, lineID); err != nil {
		respondSaleError(c, err, "DeleteSaleLine: Error from saleService.DeleteSaleLine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale line deleted successfully"})
}

// GetSales handles listing sales with filters.
func (h *SaleHandler) GetSales(c *gin.Context) {
	var filters models.SaleFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid query parameters", err.Error()))
		return
	}

	sales, totalCount, err := h.saleService.GetSales(filters)
	if err != nil {
		respondSaleError(c, err, "GetSales: Error from saleService.GetSales")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales, "total_count": totalCount})
}

// GetSaleByID handles fetching a single sale with its lines.
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	saleID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid sale ID", err.Error()))
		return
	}

	sale, err := h.saleService.GetSaleByID(saleID)
	if err != nil {
		respondSaleError(c, err, "GetSaleByID: Error from saleService.GetSaleByID")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// GetSalesHistory returns the sales history of one staff member. The history
// is visible to its owner and to Managers and Superusers.
func (h *SaleHandler) GetSalesHistory(c *gin.Context) {
	ownerID, err := utils.StrToInt64(c.Param("staffID"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid staff ID", err.Error()))
		return
	}

	requesterID, ok := middleware.StaffIDFromContext(c)
	role, roleOK := middleware.RoleFromContext(c)
	if !ok || !roleOK {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Not authenticated", ""))
		return
	}

	if !access.CanViewSalesHistory(requesterID, role, ownerID) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You are not allowed to view this sales history", ""))
		return
	}

	history, err := h.saleService.GetSalesHistory(ownerID)
	if err != nil {
		respondSaleError(c, err, "GetSalesHistory: Error from saleService.GetSalesHistory")
		return
	}
	c.JSON(http.StatusOK, history)
}
