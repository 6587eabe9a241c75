package requestlog

import (
	"time"

	"FundMCP/pkg/util"
	"FundMCP/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// Logger 为每个请求分配请求 ID，并在结束时写一条访问日志
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := util.RequestIDOrNew(c.GetHeader(HeaderRequestID))
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= 500 {
			zlog.Error("http request", fields...)
			return
		}
		zlog.Info("http request", fields...)
	}
}
