package http

import (
	"net/http"

	"FundMCP/internal/modules/fund/application/dto/request"
	"FundMCP/internal/modules/fund/application/dto/respond"
	"FundMCP/internal/modules/fund/application/service"
	"FundMCP/internal/telemetry"
	"FundMCP/pkg/back"
	"FundMCP/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TransportName = "http"
	modeName      = "HTTP REST API"
)

// ToolHandler REST 工具接口
type ToolHandler struct {
	dispatcher service.ToolDispatcher
	version    string
}

// NewToolHandler 创建 REST 工具接口 Handler
func NewToolHandler(dispatcher service.ToolDispatcher, version string) *ToolHandler {
	return &ToolHandler{dispatcher: dispatcher, version: version}
}

// RegisterRoutes 挂载 /api/tools、/api/tools/call、/api/health
func (h *ToolHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/tools", h.ListTools)
	api.POST("/tools/call", h.CallTool)
	api.GET("/health", h.Health)
}

// ListTools 列出所有可用工具
//
// 路由: GET /api/tools
// 响应体: {success, data: ToolDescriptor[]}
func (h *ToolHandler) ListTools(c *gin.Context) {
	tools, err := h.dispatcher.ListAvailableTools(c.Request.Context())
	back.Result(c, tools, err)
}

// CallTool 调用工具
//
// 路由: POST /api/tools/call
// 请求体: {name, arguments}
// 响应体: {success, data: ToolCallResult} 或 {success:false, error}
func (h *ToolHandler) CallTool(c *gin.Context) {
	var req request.ToolCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("tools/call invalid body", zap.Error(err))
		back.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx := telemetry.WithTransport(c.Request.Context(), TransportName)
	data, err := h.dispatcher.CallTool(ctx, &req)
	if err != nil {
		zlog.Warn("tools/call failed", zap.Any("tool", req.Name), zap.Error(err))
	}
	back.Result(c, data, err)
}

// Health 健康检查
//
// 路由: GET /api/health
func (h *ToolHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, respond.HealthRespond{
		Success: true,
		Message: "fund MCP Server is running",
		Version: h.version,
		Mode:    modeName,
	})
}
