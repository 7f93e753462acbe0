package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// RequireCompany ensures a valid company context exists on the request.
// AuthMiddleware sets it from the token claims; requests that somehow reach
// a scoped route without one are rejected rather than silently unscoped.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, exists := c.Get("company_id")
		if !exists {
			response.BadRequest(c, "Company context required")
			c.Abort()
			return
		}

		id, ok := companyID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid company context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCompanyID retrieves the company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
