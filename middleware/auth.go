package middleware

import (
	"strings"

	"staydesk/errors"
	"staydesk/response"
	"staydesk/services"
	"staydesk/types"

	"github.com/gin-gonic/gin"
)

const (
	OperatorKey    = "operator"
	PartnerKeyName = "partnerKey"
)

func bearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// OperatorAuth kiểm tra JWT operator và role; token lấy từ header hoặc query ?token= (websocket)
func OperatorAuth(tokens *services.TokenIssuer, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearer(c)
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		info, err := tokens.ParseOperatorToken(tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == info.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set(OperatorKey, info)
		c.Next()
	}
}

// PropertyScope chặn operator truy cập property khác với property trong token
func PropertyScope(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := Operator(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !info.CanAccess(c.Param(param)) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Operator lấy thông tin operator đã xác thực
func Operator(c *gin.Context) (types.OperatorInfo, bool) {
	v, ok := c.Get(OperatorKey)
	if !ok {
		return types.OperatorInfo{}, false
	}
	info, ok := v.(types.OperatorInfo)
	return info, ok
}

// PartnerKey lấy API key (Bearer) của partner. Key được kiểm tra với property
// sở hữu tài nguyên ở controller, khi đã biết property đó.
func PartnerKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			response.Error(c, errors.ErrCodeAuthFailed, "Missing or invalid Authorization header.")
			c.Abort()
			return
		}
		c.Set(PartnerKeyName, key)
		c.Next()
	}
}

// PartnerAPIKey trả về API key đã lấy bởi PartnerKey
func PartnerAPIKey(c *gin.Context) string {
	return c.GetString(PartnerKeyName)
}

// ErrorHandler trả lỗi cuối cùng trong c.Errors nếu handler chưa ghi response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if errors.IsAppError(err) {
			response.FromError(c, err)
			return
		}
		response.ServerError(c)
	}
}
