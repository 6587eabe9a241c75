package server

import (
	"context"
	"strconv"

	"FundMCP/internal/modules/fund/infrastructure/mcp/registry"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"
	"FundMCP/internal/telemetry"
	"FundMCP/pkg/zlog"

	"go.uber.org/zap"
)

// MCPServer 与传输层无关的工具服务接口
type MCPServer interface {
	// GetServerInfo 获取 Server 基本信息
	GetServerInfo() types.ServerInfo

	// ListTools 列出所有工具
	ListTools(ctx context.Context) ([]types.ToolDescriptor, error)

	// CallTool 校验参数并执行工具，args 为调用方传入的原始 JSON 值
	CallTool(ctx context.Context, name string, args interface{}) (*types.CallToolResult, error)
}

// BuiltinMCPServer 内置工具服务
// 所有传输层共用同一实例，参数校验只在这里做一次
type BuiltinMCPServer struct {
	info     types.ServerInfo
	registry *registry.ToolRegistry
	observer *telemetry.ToolObserver
}

// NewBuiltinMCPServer 创建内置 MCP Server，observer 可为 nil
func NewBuiltinMCPServer(name, version string, reg *registry.ToolRegistry, observer *telemetry.ToolObserver) *BuiltinMCPServer {
	return &BuiltinMCPServer{
		info: types.ServerInfo{
			Name:    name,
			Version: version,
		},
		registry: reg,
		observer: observer,
	}
}

// GetServerInfo 获取 Server 基本信息
func (s *BuiltinMCPServer) GetServerInfo() types.ServerInfo {
	return s.info
}

// ListTools 列出所有工具
func (s *BuiltinMCPServer) ListTools(ctx context.Context) ([]types.ToolDescriptor, error) {
	return s.registry.ListTools(), nil
}

// CallTool 执行工具调用
func (s *BuiltinMCPServer) CallTool(ctx context.Context, name string, args interface{}) (result *types.CallToolResult, err error) {
	ctx, call := s.observer.Start(ctx, name)
	defer func() {
		code := ""
		if err != nil {
			code = strconv.Itoa(types.ErrorCode(err))
		}
		call.End(err, code)
	}()

	toolInfo, exists := s.registry.Lookup(name)
	if !exists {
		zlog.Warn("MCP: unknown tool", zap.String("tool", name))
		return nil, types.NewUnknownToolError(name)
	}

	if toolInfo.Validator != nil {
		if verr := toolInfo.Validator.Validate(args); verr != nil {
			zlog.Warn("MCP: invalid tool arguments", zap.String("tool", name), zap.Error(verr))
			return nil, types.NewValidationError(verr.Error())
		}
	}

	params, ok := args.(map[string]interface{})
	if !ok {
		return nil, types.NewValidationError("arguments must be a JSON object")
	}

	zlog.Info("MCP: calling tool", zap.String("tool", name), zap.String("transport", telemetry.TransportFrom(ctx)))
	result, err = toolInfo.Handler(ctx, params)
	if err != nil {
		zlog.Error("MCP: tool execution failed", zap.String("tool", name), zap.Error(err))
		return nil, err
	}
	if result == nil || len(result.Content) == 0 {
		// 结果内容不允许为空
		return nil, types.NewMCPError(types.ErrCodeInternalError, "tool '"+name+"' returned empty content")
	}

	return result, nil
}
