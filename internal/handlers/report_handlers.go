package handlers

import (
	"net/http"

	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes aggregate reporting endpoints.
type ReportHandler struct {
	saleService services.SaleService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(ss services.SaleService) *ReportHandler {
	return &ReportHandler{saleService: ss}
}

// GetSalesSummary returns per-day sale counts and revenue totals.
func (h *ReportHandler) GetSalesSummary(c *gin.Context) {
	summary, err := h.saleService.GetSalesSummary()
	if err != nil {
		utils.LogError(err, "GetSalesSummary: Error from saleService.GetSalesSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to build sales summary", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
