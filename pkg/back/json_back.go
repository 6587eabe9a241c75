package back

import (
	"net/http"

	"FundMCP/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// Response REST 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Result 统一返回入口
// CodeError 使用其自身状态码，其他错误一律 500 并透出错误信息
func Result(c *gin.Context, data interface{}, err error) {
	if err == nil {
		Success(c, data)
		return
	}

	if e, ok := xerr.As(err); ok {
		Error(c, e.Code, e.Message)
		return
	}

	msg := err.Error()
	if msg == "" {
		msg = xerr.ErrServerError.Message
	}
	Error(c, http.StatusInternalServerError, msg)
}

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Error 错误返回，status 即 HTTP 状态码
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}
