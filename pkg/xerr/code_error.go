package xerr

import (
	"errors"
	"fmt"
)

// CodeError 携带 HTTP 状态码的请求错误
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

// As 从错误链中取出 CodeError
func As(err error) (*CodeError, bool) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// 常用通用错误码
const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

// 常用预定义错误
var (
	ErrToolNameRequired  = New(BadRequest, "Tool name is required")
	ErrArgumentsRequired = New(BadRequest, "Arguments are required")
	ErrSessionNotFound   = New(NotFound, "Session not found")
	ErrServerError       = New(InternalServerError, "Unknown error")
)
