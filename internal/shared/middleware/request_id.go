package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID gắn correlation id vào mỗi request, giữ id client gửi lên nếu có
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			if id, err := uuid.NewV7(); err == nil {
				requestID = id.String()
			} else {
				requestID = uuid.New().String()
			}
		}

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}
