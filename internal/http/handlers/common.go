package handlers

import (
	"hrms/internal/http/validation"

	"github.com/gin-gonic/gin"
)

// fail records err for the envelope middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindJSON decodes and validates the body; on failure it records the error and returns false.
func bindJSON[T any](c *gin.Context, dst *T) bool {
	if err := validation.DecodeJSON(c, dst); err != nil {
		fail(c, err)
		return false
	}
	return true
}

// pathID parses a numeric path parameter; on failure it records the error and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := validation.ParseID(c, name)
	if err != nil {
		fail(c, err)
		return 0, false
	}
	return id, true
}
