package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// uintParam parses a positive integer path parameter.
func uintParam(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 || v > uint64(^uint(0)) {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(v), nil
}
