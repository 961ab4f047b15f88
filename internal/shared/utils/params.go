package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParamUUID parse path param dạng UUID
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// QueryBool đọc query param boolean, nil khi không có.
// Chấp nhận true/false/1/0 (không phân biệt hoa thường).
func QueryBool(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return nil, fmt.Errorf("query param %s must be true or false", name)
	}
	return &v, nil
}
