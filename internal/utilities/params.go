package utilities

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UintParam reads a numeric path parameter. ok is false when it is missing or not a positive integer.
func UintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
