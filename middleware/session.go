package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionKey = "sessionId"

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}
		c.Set(SessionKey, sessionID)
		c.Writer.Header().Set("X-Session-ID", sessionID)
		c.Next()
	}
}

// SessionID trả về sessionId của guest, rỗng nếu không qua SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
