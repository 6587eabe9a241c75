package registry

import "FundMCP/internal/modules/fund/infrastructure/mcp/types"

// 工具名是对外协议的一部分，fund.knoewledge 的拼写必须保持不变
const (
	ToolEcho      = "fund.echo"
	ToolKnowledge = "fund.knoewledge"
)

// EchoDescriptor fund.echo 的对外描述
func EchoDescriptor() types.ToolDescriptor {
	return types.ToolDescriptor{
		Name:        ToolEcho,
		Description: "Echo back a message. Example interface for scaffold.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"message": map[string]interface{}{"type": "string", "description": "Text to echo back"},
			},
			"required": []interface{}{"message"},
		},
	}
}

// KnowledgeDescriptor fund.knoewledge 的对外描述
// pageSize/pageNum 按 number 公布，正整数约束由校验 schema 负责
func KnowledgeDescriptor() types.ToolDescriptor {
	return types.ToolDescriptor{
		Name:        ToolKnowledge,
		Description: "获取的知识库列表信息",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"kw":       map[string]interface{}{"type": "string", "description": "关键词，支持模糊查询"},
				"pageSize": map[string]interface{}{"type": "number", "description": "每页数量，默认10"},
				"pageNum":  map[string]interface{}{"type": "number", "description": "页码，默认1"},
			},
		},
	}
}
