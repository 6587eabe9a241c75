package service

import (
	"context"
	"encoding/json"
	"fmt"

	"FundMCP/internal/modules/fund/application/dto/request"
	mcpServer "FundMCP/internal/modules/fund/infrastructure/mcp/server"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"
	"FundMCP/pkg/xerr"
)

// ToolDispatcher REST 入口使用的工具调度接口
type ToolDispatcher interface {
	// ListAvailableTools 列出所有可用工具
	ListAvailableTools(ctx context.Context) ([]types.ToolDescriptor, error)

	// CallTool 校验请求形状后调用工具
	CallTool(ctx context.Context, req *request.ToolCallRequest) (*types.CallToolResult, error)
}

type toolDispatcherImpl struct {
	server mcpServer.MCPServer
}

// NewToolDispatcher 创建 ToolDispatcher
func NewToolDispatcher(server mcpServer.MCPServer) ToolDispatcher {
	return &toolDispatcherImpl{server: server}
}

func (d *toolDispatcherImpl) ListAvailableTools(ctx context.Context) ([]types.ToolDescriptor, error) {
	return d.server.ListTools(ctx)
}

// CallTool name 与 arguments 缺失或为空值时返回 400
// 其余情况（包括类型不对）一律交给工具层，失败时由调用方映射为 500
func (d *toolDispatcherImpl) CallTool(ctx context.Context, req *request.ToolCallRequest) (*types.CallToolResult, error) {
	if req == nil || isEmptyValue(req.Name) {
		return nil, xerr.ErrToolNameRequired
	}
	if isEmptyValue(req.Arguments) {
		return nil, xerr.ErrArgumentsRequired
	}
	return d.server.CallTool(ctx, toolName(req.Name), req.Arguments)
}

// isEmptyValue null、false、0 与空字符串视为未提供
func isEmptyValue(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}

// toolName 非字符串的名称按 JSON 文本查找，必然落到 Unknown tool
func toolName(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
