package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// 请求ID在gin.Context和响应头中的名称
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// SlowRequestThreshold 超过该耗时的请求按Warn级别记录
// 冷启动的推荐接口、大per_page的列表接口都会落在这里
const SlowRequestThreshold = 3 * time.Second

// RequestLogger 请求日志中间件
//
// 教学要点：
// 1. 每个请求一行结构化日志(方法、路由、状态码、耗时、客户端IP)
// 2. 请求ID优先沿用调用方传入的X-Request-ID,否则生成UUID
// 3. 带上trace_id,可以从日志跳到Jaeger里的链路
//
// 不记录请求体:压测时请求体数量巨大,而且可能包含用户数据
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields,
				zap.String("trace_id", traceID),
				zap.String("span_id", tracing.ExtractSpanID(c.Request.Context())),
			)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case latency > SlowRequestThreshold:
			zap.L().Warn("slow request", fields...)
		case c.Writer.Status() >= 500:
			zap.L().Error("request", fields...)
		default:
			zap.L().Info("request", fields...)
		}
	}
}

// GetRequestID 从Context中获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
