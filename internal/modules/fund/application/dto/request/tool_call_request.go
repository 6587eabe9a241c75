package request

// ToolCallRequest REST 工具调用请求
// 两个字段保留原始 JSON 值：缺失、null 与空值由 service 判为 400，
// 类型不对的值交给工具层报错
type ToolCallRequest struct {
	Name      interface{} `json:"name"`
	Arguments interface{} `json:"arguments"`
}
