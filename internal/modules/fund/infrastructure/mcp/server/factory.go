package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"FundMCP/internal/modules/fund/domain/repository"
	"FundMCP/internal/modules/fund/infrastructure/mcp/registry"
	mcpHandlers "FundMCP/internal/modules/fund/infrastructure/mcp/server/handlers"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrArgumentsRequired tools/call 缺少 arguments
var ErrArgumentsRequired = errors.New("Arguments are required")

// BuildToolRegistry 按固定顺序注册 fund.echo 与 fund.knoewledge
func BuildToolRegistry(kbRepo repository.KnowledgeRepository) (*registry.ToolRegistry, error) {
	if kbRepo == nil {
		return nil, fmt.Errorf("knowledge repository is required")
	}
	return registry.NewToolRegistry(
		mcpHandlers.NewEchoToolHandler().Tool(),
		mcpHandlers.NewKnowledgeToolHandler(kbRepo).Tool(),
	)
}

// NewProtocolServer 创建 mcp-go Server 并把内置工具逐个桥接进去
// stdio 与 SSE 传输共用返回的实例
func NewProtocolServer(builtin MCPServer, opts ...server.ServerOption) (*server.MCPServer, error) {
	info := builtin.GetServerInfo()
	options := append([]server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}, opts...)
	s := server.NewMCPServer(info.Name, info.Version, options...)

	descriptors, err := builtin.ListTools(context.Background())
	if err != nil {
		return nil, fmt.Errorf("list builtin tools: %w", err)
	}
	for _, desc := range descriptors {
		raw, err := json.Marshal(desc.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("encode input schema of '%s': %w", desc.Name, err)
		}
		s.AddTool(mcp.NewToolWithRawSchema(desc.Name, desc.Description, raw), toolCallBridge(builtin))
	}
	return s, nil
}

// toolCallBridge 把 mcp-go 的 CallToolRequest 转成内置调用
// 返回的 error 由 mcp-go 转为 JSON-RPC 错误响应
func toolCallBridge(builtin MCPServer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if request.Params.Arguments == nil {
			return nil, ErrArgumentsRequired
		}

		result, err := builtin.CallTool(ctx, request.Params.Name, request.Params.Arguments)
		if err != nil {
			return nil, err
		}
		return toMCPResult(result), nil
	}
}

func toMCPResult(result *types.CallToolResult) *mcp.CallToolResult {
	contents := make([]mcp.Content, 0, len(result.Content))
	for _, c := range result.Content {
		contents = append(contents, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{Content: contents}
}
