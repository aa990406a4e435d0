package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/persistence/redis"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/jwt"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 流程：提取Token → 黑名单检查 → 解析校验 → 注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
// sessionStore为nil时跳过黑名单检查（Redis未启用的部署形态）
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "请先登录")
			c.Abort()
			return
		}

		// 格式：Authorization: Bearer <token>
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 黑名单检查（已登出的Token立即失效）
		if m.sessionStore != nil {
			isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				response.ErrorWithCode(c, 50000, "验证Token失败")
				c.Abort()
				return
			}
			if isBlacklisted {
				response.ErrorWithCode(c, 40102, "Token已失效，请重新登录")
				c.Abort()
				return
			}
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("customer_id", claims.CustomerID)
		c.Set("email", claims.Email)
		c.Set("token", tokenString)

		c.Next()
	}
}

// GetCustomerID 从Context获取当前登录顾客ID（未登录返回0）
func GetCustomerID(c *gin.Context) uint {
	if v, exists := c.Get("customer_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// MustGetCustomerID 从Context获取顾客ID
// 只能在RequireAuth之后的Handler中使用
func MustGetCustomerID(c *gin.Context) uint {
	id := GetCustomerID(c)
	if id == 0 {
		panic("customer_id not found in context")
	}
	return id
}

// GetToken 从Context获取当前请求的原始Token（登出时加黑名单用）
func GetToken(c *gin.Context) string {
	if v, exists := c.Get("token"); exists {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}
