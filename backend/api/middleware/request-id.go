package middleware

import (
	"qrdrop/backend/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestId keeps a client supplied X-Request-Id or generates one, and
// echoes it on the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIdKey)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(common.RequestIdKey, id)
		c.Header(common.RequestIdKey, id)
		c.Next()
	}
}
