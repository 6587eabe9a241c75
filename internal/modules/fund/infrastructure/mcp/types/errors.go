package types

import (
	"errors"
	"fmt"
)

// MCPError 工具调用错误
// Error() 只返回 Message，REST 与 JSON-RPC 错误信息原样透出
// Status 仅在上游 HTTP 失败时有值
type MCPError struct {
	Code    int
	Message string
	Status  int
}

func (e *MCPError) Error() string {
	return e.Message
}

// Is 按错误码比较，便于 errors.Is(err, ErrToolNotFound)
func (e *MCPError) Is(target error) bool {
	var t *MCPError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// 常见错误代码
const (
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
	ErrCodeToolNotFound   = -32001
	ErrCodeUpstreamFailed = -32002
)

// NewMCPError 创建 MCP 错误
func NewMCPError(code int, message string) *MCPError {
	return &MCPError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError 参数不符合工具 schema
func NewValidationError(detail string) *MCPError {
	return NewMCPError(ErrCodeInvalidParams, "Invalid input: "+detail)
}

// NewUnknownToolError 工具名不在注册表中
func NewUnknownToolError(name string) *MCPError {
	return NewMCPError(ErrCodeToolNotFound, "Unknown tool: "+name)
}

// NewUpstreamStatusError 知识库接口返回非 2xx
func NewUpstreamStatusError(status int, statusText string) *MCPError {
	return &MCPError{
		Code:    ErrCodeUpstreamFailed,
		Message: fmt.Sprintf("Knowledge API request failed: %d %s", status, statusText),
		Status:  status,
	}
}

// NewUpstreamError 知识库接口不可达或响应不可用
func NewUpstreamError(message string) *MCPError {
	return NewMCPError(ErrCodeUpstreamFailed, message)
}

// 预定义错误，用于 errors.Is 判断类别
var (
	ErrToolNotFound  = NewMCPError(ErrCodeToolNotFound, "tool not found")
	ErrInvalidParams = NewMCPError(ErrCodeInvalidParams, "invalid parameters")
	ErrUpstream      = NewMCPError(ErrCodeUpstreamFailed, "upstream request failed")
)

// ErrorCode 返回错误链上的 MCP 错误码，非 MCPError 视为内部错误
func ErrorCode(err error) int {
	var e *MCPError
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternalError
}
