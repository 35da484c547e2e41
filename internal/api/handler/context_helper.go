package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AVN-Software/seascapes-admin/internal/pricing"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
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

// MustGetUUIDParam 读取并校验路径中的 UUID 参数，不合法时写入 400
func MustGetUUIDParam(c *gin.Context, name, label string) (string, bool) {
	raw := c.Param(name)
	if raw == "" {
		response.BadRequest(c, 10001, label+"不能为空")
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, 10001, label+"格式无效")
		return "", false
	}
	return id.String(), true
}

// writePricingError 处理计价核心返回的错误，已处理时返回 true
func writePricingError(c *gin.Context, invalidCode, ambiguousCode int, err error) bool {
	switch {
	case errors.Is(err, pricing.ErrValidation):
		response.ErrorWithDetails(c, http.StatusBadRequest, invalidCode, "价格参数无效", err.Error())
		return true
	case errors.Is(err, pricing.ErrAmbiguousSeason):
		response.ErrorWithDetails(c, http.StatusConflict, ambiguousCode, "季节优先级冲突", err.Error())
		return true
	}
	return false
}
