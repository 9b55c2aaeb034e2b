package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"groupmate/backend/pkg/gateway"
	"groupmate/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// handleRemoteError 远程表存储异常统一转为 502，其余落入 500。
// 返回 true 表示已写入响应。
func handleRemoteError(c *gin.Context, err error) bool {
	var remoteErr *gateway.RemoteError
	if errors.As(err, &remoteErr) {
		response.BadGateway(c, 50002, "远程存储服务异常")
		return true
	}
	return false
}
