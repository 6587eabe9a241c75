package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"FundMCP/internal/modules/fund/application/service"
	"FundMCP/internal/modules/fund/domain/knowledge"
	mcpServer "FundMCP/internal/modules/fund/infrastructure/mcp/server"
	"FundMCP/internal/modules/fund/infrastructure/mcp/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubKnowledgeRepository struct {
	response json.RawMessage
	err      error
}

func (s *stubKnowledgeRepository) Query(ctx context.Context, params knowledge.QueryParams) (json.RawMessage, error) {
	return s.response, s.err
}

func newRouter(t *testing.T, repo *stubKnowledgeRepository) *gin.Engine {
	t.Helper()
	reg, err := mcpServer.BuildToolRegistry(repo)
	require.NoError(t, err)
	builtin := mcpServer.NewBuiltinMCPServer("fund-mcp-server", "1.0.0", reg, nil)

	r := gin.New()
	NewToolHandler(service.NewToolDispatcher(builtin), "1.0.0").RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestListToolsReturnsBothTools(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{})

	code, body := do(t, r, http.MethodGet, "/api/tools", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])

	tools, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, tools, 2)
	names := []string{
		tools[0].(map[string]interface{})["name"].(string),
		tools[1].(map[string]interface{})["name"].(string),
	}
	assert.Equal(t, []string{"fund.echo", "fund.knoewledge"}, names)
	assert.Contains(t, tools[0].(map[string]interface{}), "inputSchema")
}

func TestCallToolEcho(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{})

	code, body := do(t, r, http.MethodPost, "/api/tools/call", `{"name":"fund.echo","arguments":{"message":"hi"}}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	content := data["content"].([]interface{})
	require.Len(t, content, 1)
	assert.Equal(t, map[string]interface{}{"type": "text", "text": "hi"}, content[0])
}

func TestCallToolKnowledgeReturnsUpstreamBody(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{response: json.RawMessage(`{"list":[1,2]}`)})

	code, body := do(t, r, http.MethodPost, "/api/tools/call", `{"name":"fund.knoewledge","arguments":{"kw":"bond"}}`)
	require.Equal(t, http.StatusOK, code)

	content := body["data"].(map[string]interface{})["content"].([]interface{})
	assert.Equal(t, `{"list":[1,2]}`, content[0].(map[string]interface{})["text"])
}

func TestCallToolValidatesRequestShape(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{})

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"empty object", `{}`, "Tool name is required"},
		{"missing arguments", `{"name":"fund.echo"}`, "Arguments are required"},
		{"empty name", `{"name":"","arguments":{}}`, "Tool name is required"},
		{"zero name", `{"name":0,"arguments":{}}`, "Tool name is required"},
		{"false name", `{"name":false,"arguments":{}}`, "Tool name is required"},
		{"null name", `{"name":null,"arguments":{}}`, "Tool name is required"},
		{"null arguments", `{"name":"fund.echo","arguments":null}`, "Arguments are required"},
		{"empty string arguments", `{"name":"fund.echo","arguments":""}`, "Arguments are required"},
		{"zero arguments", `{"name":"fund.echo","arguments":0}`, "Arguments are required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, r, http.MethodPost, "/api/tools/call", tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestCallToolMalformedBody(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{})

	for _, raw := range []string{`{"name":`, `["fund.echo"]`, `"fund.echo"`} {
		code, body := do(t, r, http.MethodPost, "/api/tools/call", raw)
		assert.Equal(t, http.StatusBadRequest, code, raw)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], "Invalid request body")
	}
}

func TestCallToolWronglyTypedFieldsReachTheTool(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{})

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"string arguments", `{"name":"fund.echo","arguments":"hello"}`, "Invalid input: /: expected object, but got string"},
		{"array arguments", `{"name":"fund.echo","arguments":["hello"]}`, "Invalid input: /: expected object, but got array"},
		{"numeric name", `{"name":123,"arguments":{}}`, "Unknown tool: 123"},
		{"true name", `{"name":true,"arguments":{}}`, "Unknown tool: true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, r, http.MethodPost, "/api/tools/call", tc.body)
			assert.Equal(t, http.StatusInternalServerError, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestCallToolFailuresMapTo500(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{err: types.NewUpstreamStatusError(502, "Bad Gateway")})

	code, body := do(t, r, http.MethodPost, "/api/tools/call", `{"name":"fund.nope","arguments":{}}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unknown tool: fund.nope", body["error"])

	code, body = do(t, r, http.MethodPost, "/api/tools/call", `{"name":"fund.echo","arguments":{"message":1}}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Invalid input: /message: expected string, but got number", body["error"])

	code, body = do(t, r, http.MethodPost, "/api/tools/call", `{"name":"fund.knoewledge","arguments":{}}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Knowledge API request failed: 502 Bad Gateway", body["error"])
}

func TestCallToolPlainErrorMessage(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{err: errors.New("boom")})

	code, body := do(t, r, http.MethodPost, "/api/tools/call", `{"name":"fund.knoewledge","arguments":{"kw":"x"}}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", body["error"])
}

func TestHealth(t *testing.T) {
	r := newRouter(t, &stubKnowledgeRepository{})

	code, body := do(t, r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "HTTP REST API", body["mode"])
	assert.NotEmpty(t, body["message"])
}
