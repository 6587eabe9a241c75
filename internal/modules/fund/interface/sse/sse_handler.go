package sse

import (
	"context"
	"net/http"
	"net/url"

	"FundMCP/internal/telemetry"
	"FundMCP/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
)

const TransportName = "sse"

// Options SSE 路由配置
type Options struct {
	SSEEndpoint     string
	MessageEndpoint string
	BaseURL         string
	KeepAlive       bool
}

// Handler 把 mcp-go SSE 传输挂到 gin 上
type Handler struct {
	sse      *server.SSEServer
	sessions *SessionTable
	opts     Options
}

// NewHandler protocol 需已通过 server.WithHooks(sessions.Hooks()) 创建
func NewHandler(protocol *server.MCPServer, sessions *SessionTable, opts Options) *Handler {
	if opts.SSEEndpoint == "" {
		opts.SSEEndpoint = "/sse"
	}
	if opts.MessageEndpoint == "" {
		opts.MessageEndpoint = "/messages"
	}
	sseServer := server.NewSSEServer(protocol,
		server.WithBaseURL(opts.BaseURL),
		server.WithSSEEndpoint(opts.SSEEndpoint),
		server.WithMessageEndpoint(opts.MessageEndpoint),
		server.WithKeepAlive(opts.KeepAlive),
		server.WithSSEContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return telemetry.WithTransport(ctx, TransportName)
		}),
	)
	return &Handler{sse: sseServer, sessions: sessions, opts: opts}
}

// RegisterRoutes 挂载 GET /sse 与 POST /messages
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET(h.opts.SSEEndpoint, h.Stream)
	r.POST(h.opts.MessageEndpoint, h.Message)
}

// Stream 建立 SSE 流，首个事件为 endpoint，携带 sessionId
//
// 路由: GET /sse
func (h *Handler) Stream(c *gin.Context) {
	h.sse.SSEHandler().ServeHTTP(c.Writer, c.Request)
}

// Message 把客户端消息投递到对应会话
//
// 路由: POST /messages?sessionId=<id>
func (h *Handler) Message(c *gin.Context) {
	if !h.sessions.Has(c.Query("sessionId")) {
		c.String(xerr.ErrSessionNotFound.Code, xerr.ErrSessionNotFound.Message)
		return
	}
	h.sse.MessageHandler().ServeHTTP(c.Writer, c.Request)
}

// SessionIDFromEndpoint 从 endpoint 事件数据中取出 sessionId
func SessionIDFromEndpoint(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	return u.Query().Get("sessionId"), nil
}
