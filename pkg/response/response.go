package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/cinesocial/pkg/apperr"
	"github.com/d60-Lab/cinesocial/pkg/logger"
)

// Response 错误响应体
type Response struct {
	Msg string `json:"msg" example:"Invalid limit"`
}

// Success 200，响应体即 data
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest 400
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Msg: msg})
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Msg: "Too Many Requests"})
}

// Error 按错误类别输出响应；5xx 记录日志并上报 Sentry
func Error(c *gin.Context, err error) {
	status, msg := apperr.Translate(err)
	if status >= http.StatusInternalServerError {
		InternalError(c, err)
		return
	}
	c.AbortWithStatusJSON(status, Response{Msg: msg})
}

// InternalError 500
func InternalError(c *gin.Context, err error) {
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.Clone().CaptureException(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Msg: "Internal Server Error"})
}
