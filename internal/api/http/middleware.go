package apiHttp

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// requestIDMiddleware echoes the caller's request id or assigns a fresh one.
func requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	c.Set(requestIDHeader, id)
	c.Header(requestIDHeader, id)
	c.Next()
}
