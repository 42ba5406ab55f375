package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

// ParseIDParam reads a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewFieldError(name, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}
