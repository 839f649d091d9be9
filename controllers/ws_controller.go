package controllers

import (
	"staydesk/middleware"
	"staydesk/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// Connect nâng cấp kết nối websocket, gắn propertyID của operator vào session
func Connect(m *melody.Melody) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, _ := middleware.Operator(c)
		keys := map[string]interface{}{
			notification.SessionPropertyKey: info.PropertyID,
		}
		_ = m.HandleRequestWithKeys(c.Writer, c.Request, keys)
	}
}
