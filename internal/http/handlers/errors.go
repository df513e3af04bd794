package handlers

import (
	"errors"

	"github.com/shipdesk/internal/http/response"
	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/service"
	"github.com/shipdesk/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok && id != "" {
				return logger.S().With("request_id", id)
			}
		}
	}
	return logger.S()
}

// respondAppError 包装错误返回统一响应，携带原始错误时记录日志
func respondAppError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondServiceError 按错误种类映射统一响应码
func respondServiceError(c *gin.Context, err error) {
	var appErr *response.AppError
	switch {
	case errors.As(err, &appErr):
		respondAppError(c, appErr.Code, appErr.Message, appErr.Unwrap())
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, "记录不存在")
	case errors.Is(err, repository.ErrConflict):
		response.Conflict(c, "记录仍被引用，无法删除")
	case errors.Is(err, service.ErrShipmentClosed):
		response.Conflict(c, "批次已关闭")
	case errors.Is(err, service.ErrSameShipment),
		errors.Is(err, service.ErrNotInSourceShipment),
		errors.Is(err, service.ErrInvalidArgument):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "用户名或密码错误")
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(c, "用户名已存在")
	case errors.Is(err, service.ErrPasswordTooShort):
		response.BadRequest(c, "密码长度不满足策略")
	case errors.Is(err, service.ErrCaptchaInvalid):
		response.BadRequest(c, "验证码校验失败")
	case errors.Is(err, store.ErrUnavailable):
		respondAppError(c, response.CodeInternal, "存储暂不可用", err)
	default:
		respondAppError(c, response.CodeInternal, "内部错误", err)
	}
}
