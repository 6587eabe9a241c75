package types

// ServerInfo MCP Server 基本信息
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

const ContentTypeText = "text"

// Content MCP 内容项，目前只有 text
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResult 工具调用结果，构造后不再修改
type CallToolResult struct {
	Content []Content `json:"content"`
}

// NewTextResult 单个文本内容项的结果
func NewTextResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []Content{{Type: ContentTypeText, Text: text}},
	}
}
