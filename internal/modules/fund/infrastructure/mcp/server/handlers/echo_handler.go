package handlers

import (
	"context"

	"FundMCP/internal/modules/fund/domain/echo"
	"FundMCP/internal/modules/fund/infrastructure/mcp/registry"
	"FundMCP/internal/modules/fund/infrastructure/mcp/schema"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"
)

// EchoToolHandler fund.echo 原样返回 message
type EchoToolHandler struct {
	validator *schema.Validator
}

func NewEchoToolHandler() *EchoToolHandler {
	return &EchoToolHandler{validator: schema.MustNew(&echo.Params{})}
}

// Tool 注册到工具目录的完整信息
func (h *EchoToolHandler) Tool() types.ToolInfo {
	return types.ToolInfo{
		Descriptor: registry.EchoDescriptor(),
		Validator:  h.validator,
		Handler:    h.handleEcho,
	}
}

func (h *EchoToolHandler) handleEcho(ctx context.Context, args map[string]interface{}) (*types.CallToolResult, error) {
	var params echo.Params
	if err := schema.Decode(args, &params); err != nil {
		return nil, types.NewValidationError(err.Error())
	}
	return types.NewTextResult(params.Message), nil
}
