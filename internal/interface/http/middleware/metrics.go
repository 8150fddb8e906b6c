package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
)

// unmatchedRoute 未匹配任何路由的请求统一归到一个标签,避免扫描器把path标签撑爆
const unmatchedRoute = "unmatched"

// Metrics 记录HTTP请求数、耗时和在途请求数
// path标签使用路由模板(/api/books/:id),不使用原始URL
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   route,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   route,
		}, time.Since(start).Seconds())
	}
}
