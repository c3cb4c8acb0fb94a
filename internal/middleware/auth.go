package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"debate_arena/internal/utils"
)

// AuthMiddleware 是一個 Gin 中間件，用於驗證請求的 JWT token
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 從請求頭中獲取 Authorization 字段
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// 檢查 Authorization 頭的格式
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		// 解析 JWT token，refresh token 不能拿來存取 API
		claims, err := utils.ParseToken(secret, parts[1])
		if err != nil || claims.TokenType != utils.TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 將用戶信息設置到上下文中
		c.Set("userID", claims.UserID)
		c.Next()
	}
}
