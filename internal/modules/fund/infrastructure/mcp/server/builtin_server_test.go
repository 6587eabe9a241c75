package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"FundMCP/internal/modules/fund/domain/knowledge"
	"FundMCP/internal/modules/fund/infrastructure/kbapi"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKnowledgeRepository 记录查询参数并返回预设结果
type fakeKnowledgeRepository struct {
	mu       sync.Mutex
	calls    []knowledge.QueryParams
	response json.RawMessage
	err      error
}

func (f *fakeKnowledgeRepository) Query(ctx context.Context, params knowledge.QueryParams) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)
	return f.response, f.err
}

func newBuiltin(t *testing.T, repo *fakeKnowledgeRepository) *BuiltinMCPServer {
	t.Helper()
	reg, err := BuildToolRegistry(repo)
	require.NoError(t, err)
	return NewBuiltinMCPServer("fund-mcp-server", "test", reg, nil)
}

func TestListToolsReturnsBothTools(t *testing.T) {
	s := newBuiltin(t, &fakeKnowledgeRepository{})

	tools, err := s.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "fund.echo", tools[0].Name)
	assert.Equal(t, "fund.knoewledge", tools[1].Name)
}

func TestEchoReturnsMessageVerbatim(t *testing.T) {
	s := newBuiltin(t, &fakeKnowledgeRepository{})

	for _, msg := range []string{"hello", "", "  padded  ", "多字节 ✓", "line1\nline2"} {
		res, err := s.CallTool(context.Background(), "fund.echo", map[string]interface{}{"message": msg})
		require.NoError(t, err)
		require.Len(t, res.Content, 1)
		assert.Equal(t, "text", res.Content[0].Type)
		assert.Equal(t, msg, res.Content[0].Text)
	}
}

func TestEchoRejectsInvalidArguments(t *testing.T) {
	s := newBuiltin(t, &fakeKnowledgeRepository{})

	_, err := s.CallTool(context.Background(), "fund.echo", map[string]interface{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidParams)
	assert.Contains(t, err.Error(), "message")

	_, err = s.CallTool(context.Background(), "fund.echo", map[string]interface{}{"message": 1})
	assert.ErrorIs(t, err, types.ErrInvalidParams)
}

func TestNonObjectArgumentsAreInvalid(t *testing.T) {
	s := newBuiltin(t, &fakeKnowledgeRepository{})

	_, err := s.CallTool(context.Background(), "fund.echo", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidParams)
	assert.Equal(t, "Invalid input: /: expected object, but got string", err.Error())
}

func TestUnknownToolNamesTheTool(t *testing.T) {
	s := newBuiltin(t, &fakeKnowledgeRepository{})

	for _, name := range []string{"fund.unknown", "FUND.ECHO", ""} {
		_, err := s.CallTool(context.Background(), name, map[string]interface{}{})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrToolNotFound)
		assert.Contains(t, err.Error(), "Unknown tool: "+name)
	}
}

func TestKnowledgeAppliesDefaults(t *testing.T) {
	repo := &fakeKnowledgeRepository{response: json.RawMessage(`{"code":0}`)}
	s := newBuiltin(t, repo)

	res, err := s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, `{"code":0}`, res.Content[0].Text)

	require.Len(t, repo.calls, 1)
	assert.Equal(t, knowledge.QueryParams{Kw: "", PageSize: 10, PageNum: 1}, repo.calls[0])
}

func TestKnowledgeRejectsNonPositivePaging(t *testing.T) {
	repo := &fakeKnowledgeRepository{response: json.RawMessage(`{}`)}
	s := newBuiltin(t, repo)

	_, err := s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{"pageSize": 0})
	assert.ErrorIs(t, err, types.ErrInvalidParams)
	_, err = s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{"pageNum": 1.5})
	assert.ErrorIs(t, err, types.ErrInvalidParams)
	assert.Empty(t, repo.calls)
}

func TestKnowledgePropagatesUpstreamError(t *testing.T) {
	repo := &fakeKnowledgeRepository{err: types.NewUpstreamStatusError(503, "Service Unavailable")}
	s := newBuiltin(t, repo)

	_, err := s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{"kw": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUpstream)
	assert.Contains(t, err.Error(), "503")
}

// 以下用 httptest 模拟知识库接口，走完整的 HTTP 路径

func newBuiltinWithUpstream(t *testing.T, handler http.HandlerFunc) (*BuiltinMCPServer, *httptest.Server) {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	reg, err := BuildToolRegistry(kbapi.NewKnowledgeRepositoryWithClient(upstream.URL, upstream.Client()))
	require.NoError(t, err)
	return NewBuiltinMCPServer("fund-mcp-server", "test", reg, nil), upstream
}

func TestKnowledgeDefaultQueryParameters(t *testing.T) {
	var got url.Values
	s, _ := newBuiltinWithUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"code":200,"msg":"ok","result":[]}`))
	})

	res, err := s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200,"msg":"ok","result":[]}`, res.Content[0].Text)

	assert.Equal(t, url.Values{"kw": {""}, "pageSize": {"10"}, "pageNum": {"1"}}, got)
}

func TestKnowledgeUpstream500(t *testing.T) {
	s, _ := newBuiltinWithUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUpstream)
	assert.Contains(t, err.Error(), "500")
}

func TestKnowledgeUpstreamInvalidJSON(t *testing.T) {
	s, _ := newBuiltinWithUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := s.CallTool(context.Background(), "fund.knoewledge", map[string]interface{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUpstream)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestBuildToolRegistryRequiresRepository(t *testing.T) {
	_, err := BuildToolRegistry(nil)
	assert.Error(t, err)
}
