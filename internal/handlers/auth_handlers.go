package handlers

import (
	"errors"
	"net/http"

	"coffee_pos_backend/internal/middleware"
	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login verifies credentials and returns access and refresh tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	resp, err := h.authService.Login(creds)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid username or password", ""))
		case errors.Is(err, services.ErrUserInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Staff account is inactive", ""))
		default:
			utils.LogError(err, "Login: Error from authService.Login")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to log in", ""))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshTokenRequest is the refresh endpoint payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a valid refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid or expired refresh token", ""))
		default:
			utils.LogError(err, "Refresh: Error from authService.Refresh")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to refresh token", ""))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register creates a new staff account. Reaching this handler already passed
// the Manager-only policy gate.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload", err.Error()))
		return
	}

	user, err := h.authService.RegisterStaff(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Unknown staff role", err.Error()))
		case errors.Is(err, services.ErrUsernameExists), errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Username or email already in use", err.Error()))
		default:
			utils.LogError(err, "Register: Error from authService.RegisterStaff")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to register staff account", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Staff account registered successfully", "user": user})
}

// Me returns the authenticated staff member's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	staffID, ok := middleware.StaffIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Not authenticated", ""))
		return
	}

	user, err := h.authService.GetProfile(staffID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Staff account not found", ""))
			return
		}
		utils.LogError(err, "Me: Error from authService.GetProfile")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to load profile", ""))
		return
	}
	c.JSON(http.StatusOK, user)
}
