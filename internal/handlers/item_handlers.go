package handlers

import (
	"errors"
	"net/http"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ItemHandler holds the item service.
type ItemHandler struct {
	itemService services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(is services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: is}
}

func respondItemError(c *gin.Context, err error, logContext string) {
	var notFound *services.ItemNotFoundError
	switch {
	case errors.As(err, &notFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Item not found", err.Error()))
	case errors.Is(err, services.ErrItemNameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
			"An item with this name already exists", err.Error()))
	case errors.Is(err, services.ErrNegativePrice), errors.Is(err, services.ErrNegativeStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid item data", err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Item operation failed", ""))
	}
}

// CreateItem handles the creation of a new catalog item.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(req)
	if err != nil {
		respondItemError(c, err, "CreateItem: Error from itemService.CreateItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItems handles listing catalog items.
func (h *ItemHandler) GetItems(c *gin.Context) {
	var filters models.ItemFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid query parameters", err.Error()))
		return
	}

	items, totalCount, err := h.itemService.GetItems(filters)
	if err != nil {
		respondItemError(c, err, "GetItems: Error from itemService.GetItems")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total_count": totalCount})
}

// GetItemByID handles fetching a single catalog item.
func (h *ItemHandler) GetItemByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid item ID", err.Error()))
		return
	}

	item, err := h.itemService.GetItemByID(id)
	if err != nil {
		respondItemError(c, err, "GetItemByID: Error from itemService.GetItemByID")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem handles editing a catalog item.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid item ID", err.Error()))
		return
	}

	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	item, err := h.itemService.UpdateItem(id, req)
	if err != nil {
		respondItemError(c, err, "UpdateItem: Error from itemService.UpdateItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeactivateItem soft-deletes a catalog item. Items are never hard-deleted
// because historical sale lines reference them.
func (h *ItemHandler) DeactivateItem(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid item ID", err.Error()))
		return
	}

	if err := h.itemService.DeactivateItem(id); err != nil {
		respondItemError(c, err, "DeactivateItem: Error from itemService.DeactivateItem")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deactivated successfully"})
}
