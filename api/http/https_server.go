package http

import (
	"net/http"

	"FundMCP/internal/config"
	"FundMCP/internal/middleware/requestlog"
	"FundMCP/pkg/ssl"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// MaxBodyBytes 请求体上限
const MaxBodyBytes = 10 << 20

// RouteRegistrar 可挂载到 Engine 上的接口模块
type RouteRegistrar interface {
	RegisterRoutes(r gin.IRouter)
}

// NewEngine 组装中间件并挂载各传输的路由
// REST 与 SSE 共用同一个 Engine，互不依赖
func NewEngine(conf *config.Config, registrars ...RouteRegistrar) *gin.Engine {
	ge := gin.New()
	ge.Use(gin.Recovery())
	ge.Use(requestlog.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.OptionsResponseStatusCode = http.StatusOK
	ge.Use(cors.New(corsConfig))
	ge.Use(Preflight())

	ge.Use(ssl.SecureHandler(conf.Host, conf.Port, conf.TLSEnabled()))
	ge.Use(LimitBody(MaxBodyBytes))

	for _, r := range registrars {
		r.RegisterRoutes(ge)
	}
	return ge
}

// Preflight 任意路径的 OPTIONS 直接返回 200
// 带 Origin 的预检已由 cors 中间件处理，这里兜住不带 Origin 的请求
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// LimitBody 限制请求体大小，超限时 JSON 解析失败
func LimitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
