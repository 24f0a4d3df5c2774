package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/pkg/requestid"
)

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestid.Header)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.New().String()
		}

		requestid.Set(c, rid)
		c.Next()
	}
}
