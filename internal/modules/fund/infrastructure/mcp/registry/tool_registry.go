package registry

import (
	"fmt"

	"FundMCP/internal/modules/fund/infrastructure/mcp/types"
	"FundMCP/pkg/zlog"

	"go.uber.org/zap"
)

// ToolRegistry 静态工具目录
// 启动时一次性注册，之后只读，因此无需加锁
type ToolRegistry struct {
	tools []types.ToolInfo
	index map[string]int
}

// NewToolRegistry 按给定顺序注册工具，重名或缺少 handler 时报错
func NewToolRegistry(tools ...types.ToolInfo) (*ToolRegistry, error) {
	r := &ToolRegistry{
		tools: make([]types.ToolInfo, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}
	for _, tool := range tools {
		name := tool.Descriptor.Name
		if name == "" {
			return nil, fmt.Errorf("tool name is required")
		}
		if _, exists := r.index[name]; exists {
			return nil, fmt.Errorf("tool '%s' already registered", name)
		}
		if tool.Handler == nil {
			return nil, fmt.Errorf("tool '%s' has no handler", name)
		}
		r.index[name] = len(r.tools)
		r.tools = append(r.tools, tool)
		zlog.Debug("MCP: registered tool", zap.String("tool", name))
	}
	return r, nil
}

// ListTools 按注册顺序返回描述符
func (r *ToolRegistry) ListTools() []types.ToolDescriptor {
	descriptors := make([]types.ToolDescriptor, 0, len(r.tools))
	for _, tool := range r.tools {
		descriptors = append(descriptors, tool.Descriptor)
	}
	return descriptors
}

// Lookup 按名称精确查找（区分大小写）
func (r *ToolRegistry) Lookup(name string) (types.ToolInfo, bool) {
	i, ok := r.index[name]
	if !ok {
		return types.ToolInfo{}, false
	}
	return r.tools[i], true
}

// Len 已注册工具数
func (r *ToolRegistry) Len() int {
	return len(r.tools)
}
