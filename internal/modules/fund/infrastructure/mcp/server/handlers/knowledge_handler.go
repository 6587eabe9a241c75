package handlers

import (
	"context"

	"FundMCP/internal/modules/fund/domain/knowledge"
	"FundMCP/internal/modules/fund/domain/repository"
	"FundMCP/internal/modules/fund/infrastructure/mcp/registry"
	"FundMCP/internal/modules/fund/infrastructure/mcp/schema"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"
	"FundMCP/pkg/zlog"

	"go.uber.org/zap"
)

// KnowledgeToolHandler fund.knoewledge 知识库查询
type KnowledgeToolHandler struct {
	repo      repository.KnowledgeRepository
	validator *schema.Validator
}

func NewKnowledgeToolHandler(repo repository.KnowledgeRepository) *KnowledgeToolHandler {
	return &KnowledgeToolHandler{
		repo:      repo,
		validator: schema.MustNew(&knowledge.QueryParams{}),
	}
}

// Tool 注册到工具目录的完整信息
func (h *KnowledgeToolHandler) Tool() types.ToolInfo {
	return types.ToolInfo{
		Descriptor: registry.KnowledgeDescriptor(),
		Validator:  h.validator,
		Handler:    h.handleKnowledge,
	}
}

func (h *KnowledgeToolHandler) handleKnowledge(ctx context.Context, args map[string]interface{}) (*types.CallToolResult, error) {
	var params knowledge.QueryParams
	if err := schema.Decode(args, &params); err != nil {
		return nil, types.NewValidationError(err.Error())
	}
	params = params.WithDefaults()

	zlog.Info("fund.knoewledge query",
		zap.String("kw", params.Kw),
		zap.Int("page_size", params.PageSize),
		zap.Int("page_num", params.PageNum),
	)

	body, err := h.repo.Query(ctx, params)
	if err != nil {
		return nil, err
	}
	return types.NewTextResult(string(body)), nil
}
