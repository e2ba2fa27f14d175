package handlers

import (
	"errors"
	"net/http"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

func respondStaffError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Staff member not found", ""))
	case errors.Is(err, services.ErrInvalidRole):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Unknown staff role", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
			"Email already in use", err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Staff operation failed", ""))
	}
}

// GetStaffMembers lists staff accounts with optional role and status filters.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	var filters models.StaffFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid query parameters", err.Error()))
		return
	}

	users, totalCount, err := h.staffService.GetStaffMembers(filters)
	if err != nil {
		respondStaffError(c, err, "GetStaffMembers: Error from staffService.GetStaffMembers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": users, "total_count": totalCount})
}

// GetStaffMemberByID fetches one staff account.
func (h *StaffHandler) GetStaffMemberByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid staff ID", err.Error()))
		return
	}

	user, err := h.staffService.GetStaffMemberByID(id)
	if err != nil {
		respondStaffError(c, err, "GetStaffMemberByID: Error from staffService.GetStaffMemberByID")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateStaffMember edits a staff account's profile and role.
func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid staff ID", err.Error()))
		return
	}

	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	user, err := h.staffService.UpdateStaffMember(id, req)
	if err != nil {
		respondStaffError(c, err, "UpdateStaffMember: Error from staffService.UpdateStaffMember")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeactivateStaffMember soft-deletes a staff account. The row stays in place
// so historical sales and ratings keep their author.
func (h *StaffHandler) DeactivateStaffMember(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid staff ID", err.Error()))
		return
	}

	if err := h.staffService.DeactivateStaffMember(id); err != nil {
		respondStaffError(c, err, "DeactivateStaffMember: Error from staffService.DeactivateStaffMember")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deactivated successfully"})
}
