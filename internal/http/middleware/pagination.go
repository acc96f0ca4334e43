package middleware

import (
	"hrms/internal/pagination"

	"github.com/gin-gonic/gin"
)

// Pagination gives each request its own pagination metadata carrier.
func Pagination() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := pagination.WithMetadata(c.Request.Context(), pagination.New())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
