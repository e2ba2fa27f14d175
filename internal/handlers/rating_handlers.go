package handlers

import (
	"errors"
	"net/http"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RatingHandler holds the rating service.
type RatingHandler struct {
	ratingService services.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(rs services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: rs}
}

// CreateRating records a performance rating for a staff member.
func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req services.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	rating, err := h.ratingService.CreateRating(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRatingScore):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Invalid rating score", err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Staff member not found", err.Error()))
		default:
			utils.LogError(err, "CreateRating: Error from ratingService.CreateRating")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to create rating", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// GetRatingsForStaff lists the ratings of one staff member.
func (h *RatingHandler) GetRatingsForStaff(c *gin.Context) {
	staffID, err := utils.StrToInt64(c.Param("staffID"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid staff ID", err.Error()))
		return
	}

	filters := models.RatingFilters{StaffID: &staffID}
	ratings, totalCount, err := h.ratingService.GetRatings(filters)
	if err != nil {
		utils.LogError(err, "GetRatingsForStaff: Error from ratingService.GetRatings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to get ratings", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings, "total_count": totalCount})
}

// GetRatings lists ratings, optionally filtered by staff member and date range.
func (h *RatingHandler) GetRatings(c *gin.Context) {
	var filters models.RatingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid query parameters", err.Error()))
		return
	}

	ratings, totalCount, err := h.ratingService.GetRatings(filters)
	if err != nil {
		utils.LogError(err, "GetRatings: Error from ratingService.GetRatings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to get ratings", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings, "total_count": totalCount})
}
