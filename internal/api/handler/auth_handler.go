package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"groupmate/backend/pkg/redis"
	"groupmate/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
// 登录由独立的身份服务完成（共享签名密钥），本服务只负责
// 登出黑名单与当前用户信息回显
type AuthHandler struct {
	rdb *redis.Client
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(rdb *redis.Client) *AuthHandler {
	return &AuthHandler{rdb: rdb}
}

// Logout 用户登出
// POST /api/v1/auth/logout
// 将当前 Token 的 jti 加入黑名单，TTL 为 Token 剩余有效期
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.rdb == nil {
		// Redis 降级运行：登出不做黑名单，Token 到期自然失效
		response.OK(c, nil)
		return
	}

	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expiresAt, ok := exp.(*jwtv5.NumericDate)
	if jti == "" || !ok || expiresAt == nil {
		response.OK(c, nil)
		return
	}

	ttl := time.Until(expiresAt.Time)
	if err := h.rdb.BlacklistToken(c.Request.Context(), jti, ttl); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me 当前用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	response.OK(c, gin.H{
		"user_id": userID,
		"role":    c.GetString("role"),
	})
}
