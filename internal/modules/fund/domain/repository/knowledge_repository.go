package repository

import (
	"context"
	"encoding/json"

	"FundMCP/internal/modules/fund/domain/knowledge"
)

// KnowledgeRepository 知识库查询能力抽象
//
// 返回值是上游响应体本身（已确认是合法 JSON），其 {code, msg, result} 信封不做解析。
// 每次调用恰好发出一次上游请求，不重试。
type KnowledgeRepository interface {
	Query(ctx context.Context, params knowledge.QueryParams) (json.RawMessage, error)
}
