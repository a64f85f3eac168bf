package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kittenluv1/clubhouse-sub000/pkg/jwt"
	"github.com/kittenluv1/clubhouse-sub000/pkg/redis"
	"github.com/kittenluv1/clubhouse-sub000/pkg/response"
)

// bearerToken 从 Authorization: Bearer <token> 中提取 token，格式不符返回空串
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// resolvePrincipal 验证 token 并返回 claims
// rdb 允许为 nil（黑名单检查降级跳过）
func resolvePrincipal(c *gin.Context, jwtMgr *jwt.Manager, rdb *redis.Client, token string) (*jwt.Claims, bool) {
	claims, err := jwtMgr.ParseToken(token)
	if err != nil {
		return nil, false
	}
	if claims.TokenType != "access" {
		return nil, false
	}
	if rdb != nil {
		if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), token); err == nil && blacklisted {
			return nil, false
		}
	}
	return claims, true
}

// JWTAuth JWT 认证中间件（必须登录）
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Unauthorized(c, 10002, "缺少或格式无效的认证头")
			c.Abort()
			return
		}

		claims, ok := resolvePrincipal(c, jwtMgr, rdb, token)
		if !ok {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OptionalJWTAuth 可选认证中间件
// 携带有效 token 时注入用户信息，匿名或 token 无效时以匿名身份放行。
// 目录浏览与评价提交允许匿名访问。
func OptionalJWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, ok := resolvePrincipal(c, jwtMgr, rdb, token); ok {
				c.Set("user_id", claims.UserID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
