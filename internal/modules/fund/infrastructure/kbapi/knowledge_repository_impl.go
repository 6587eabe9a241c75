package kbapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"FundMCP/internal/modules/fund/domain/knowledge"
	"FundMCP/internal/modules/fund/domain/repository"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"
	"FundMCP/pkg/zlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// maxResponseBytes 上游响应体读取上限
const maxResponseBytes = 32 << 20

type knowledgeRepositoryImpl struct {
	baseURL string
	client  *http.Client
}

// NewKnowledgeRepository 基于知识库 HTTP 接口的实现
// timeout<=0 时不额外设置超时
func NewKnowledgeRepository(baseURL string, timeout time.Duration) (repository.KnowledgeRepository, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse knowledge api url: %w", err)
	}
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &knowledgeRepositoryImpl{baseURL: baseURL, client: client}, nil
}

// NewKnowledgeRepositoryWithClient 指定 http.Client，测试使用
func NewKnowledgeRepositoryWithClient(baseURL string, client *http.Client) repository.KnowledgeRepository {
	return &knowledgeRepositoryImpl{baseURL: baseURL, client: client}
}

func (r *knowledgeRepositoryImpl) Query(ctx context.Context, params knowledge.QueryParams) (json.RawMessage, error) {
	endpoint, err := r.buildURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build knowledge request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, types.NewUpstreamError(fmt.Sprintf("Knowledge API request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, types.NewUpstreamStatusError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, types.NewUpstreamError(fmt.Sprintf("Knowledge API response read failed: %v", err))
	}

	normalized, err := normalizeJSON(body)
	if err != nil {
		zlog.Warn("knowledge api returned invalid json", zap.Error(err))
		return nil, types.NewUpstreamError("Knowledge API returned invalid JSON response")
	}

	zlog.Debug("knowledge query result",
		zap.String("kw", params.Kw),
		zap.Int("page_size", params.PageSize),
		zap.Int("page_num", params.PageNum),
		zap.Int("bytes", len(normalized)),
	)
	return normalized, nil
}

// buildURL 在 baseURL 原有查询参数基础上设置 kw/pageSize/pageNum
func (r *knowledgeRepositoryImpl) buildURL(params knowledge.QueryParams) (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse knowledge api url: %w", err)
	}
	q := u.Query()
	q.Set("kw", params.Kw)
	q.Set("pageSize", strconv.Itoa(params.PageSize))
	q.Set("pageNum", strconv.Itoa(params.PageNum))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
