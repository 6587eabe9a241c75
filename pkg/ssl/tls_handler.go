package ssl

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHandler 安全响应头中间件
// tlsEnabled 时把明文请求重定向到 host:port 的 https 地址
func SecureHandler(host string, port int, tlsEnabled bool) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:        tlsEnabled,
		SSLHost:            host + ":" + strconv.Itoa(port),
		ContentTypeNosniff: true,
		FrameDeny:          true,
	})
	return func(c *gin.Context) {
		// Process 出错时已写入响应（重定向），直接返回即可
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}

		c.Next()
	}
}
