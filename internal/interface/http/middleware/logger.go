package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

// slowRequestThreshold 慢请求告警阈值
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 生成请求ID（客户端传了X-Request-ID则沿用）
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 慢请求额外输出warn
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}

		if latency > slowRequestThreshold {
			log.Warn("slow request", zap.String("request_id", requestID), zap.String("path", c.Request.URL.Path), zap.Duration("latency", latency))
		}
	}
}
