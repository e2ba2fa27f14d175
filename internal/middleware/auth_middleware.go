package middleware

import (
	"net/http"
	"strings"

	"coffee_pos_backend/internal/access"
	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxStaffID  = "staffID"
	CtxUsername = "username"
	CtxRole     = "staffRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid or expired token", err.Error()))
			return
		}

		c.Set(CtxStaffID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, models.Role(claims.Role))

		c.Next()
	}
}

// RequireAction creates a Gin middleware that consults the access policy
// table for the given action. It never touches the data model; a role outside
// the allowed set is rejected with 403 before the handler runs.
func RequireAction(action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"Staff role not found in token claims. Ensure AuthMiddleware runs first.", ""))
			return
		}

		if !access.Allowed(role, action) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to perform this action", string(action)))
			return
		}

		c.Next()
	}
}

// StaffIDFromContext returns the authenticated staff member's ID.
func StaffIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(CtxStaffID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// RoleFromContext returns the authenticated staff member's role.
func RoleFromContext(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(CtxRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}
