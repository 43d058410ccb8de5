package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mikemeister8/octogon-home-app/internal/models"
	"github.com/Mikemeister8/octogon-home-app/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const householdKey = "household"

// HouseholdLoader looks households up by id
type HouseholdLoader interface {
	GetHousehold(ctx context.Context, id uuid.UUID) (*models.Household, error)
}

// LoadHousehold resolves the :householdID path parameter, checks it against
// the token's household claim and stores the household in the context.
// It must run after RequireAuth.
func LoadHousehold(loader HouseholdLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		householdID, err := uuid.Parse(c.Param("householdID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid household ID"})
			c.Abort()
			return
		}

		claimed, exists := GetAuthHouseholdID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if claimed != householdID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this household"})
			c.Abort()
			return
		}

		household, err := loader.GetHousehold(c.Request.Context(), householdID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Household not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Failed to load household",
					"details": err.Error(),
				})
			}
			c.Abort()
			return
		}

		c.Set(householdKey, household)
		c.Next()
	}
}

// GetHousehold retrieves the household loaded by LoadHousehold
func GetHousehold(c *gin.Context) (*models.Household, bool) {
	val, exists := c.Get(householdKey)
	if !exists {
		return nil, false
	}
	household, ok := val.(*models.Household)
	return household, ok
}
