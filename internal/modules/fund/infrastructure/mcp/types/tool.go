package types

import "context"

// ToolDescriptor 工具描述符，对外公布的名称、描述与入参 schema
type ToolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ArgumentValidator 按工具声明的约束校验入参
// args 为任意 JSON 值，非对象同样在这里被拒绝
type ArgumentValidator interface {
	Validate(args interface{}) error
}

// ToolHandler 工具处理函数，入参已通过校验
type ToolHandler func(ctx context.Context, args map[string]interface{}) (*CallToolResult, error)

// ToolInfo 内部工具信息（包含校验器与 handler）
type ToolInfo struct {
	Descriptor ToolDescriptor
	Validator  ArgumentValidator
	Handler    ToolHandler
}
