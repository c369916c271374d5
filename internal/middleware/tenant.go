package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/repository"
)

// TenantResolver scopes public (unauthenticated) routes to a tenant via the
// :tenant_slug path parameter. Authenticated routes get the tenant from the
// token instead.
func TenantResolver(tenants repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("tenant_slug")
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "unknown tenant",
			})
			return
		}

		tenant, err := tenants.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "unknown tenant",
			})
			return
		}

		c.Set(ContextTenantID, tenant.ID)
		c.Next()
	}
}
