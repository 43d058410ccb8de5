package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Mikemeister8/octogon-home-app/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authUserKey      = "auth_user_id"
	authHouseholdKey = "auth_household_id"
)

// RequireAuth validates the bearer token issued by the identity provider and
// stores the user and household claims in the context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check for Bearer token format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(authUserKey, claims.UserID)
		c.Set(authHouseholdKey, claims.HouseholdID)

		c.Next()
	}
}

// GetAuthUserID retrieves the authenticated user ID from context
func GetAuthUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(authUserKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetAuthHouseholdID retrieves the household claim from context
func GetAuthHouseholdID(c *gin.Context) (uuid.UUID, bool) {
	householdID, exists := c.Get(authHouseholdKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := householdID.(uuid.UUID)
	return id, ok
}
