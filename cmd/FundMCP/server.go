package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	apihttp "FundMCP/api/http"
	"FundMCP/internal/config"
	"FundMCP/internal/modules/fund/application/service"
	"FundMCP/internal/modules/fund/infrastructure/kbapi"
	mcpServer "FundMCP/internal/modules/fund/infrastructure/mcp/server"
	restHandler "FundMCP/internal/modules/fund/interface/http"
	"FundMCP/internal/modules/fund/interface/sse"
	"FundMCP/internal/modules/fund/interface/stdio"
	"FundMCP/internal/telemetry"
	"FundMCP/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// app 进程内共享的组件
type app struct {
	conf     *config.Config
	builtin  *mcpServer.BuiltinMCPServer
	protocol *server.MCPServer
	sessions *sse.SessionTable
}

func run(ctx context.Context, opts *rootOptions) error {
	// 1. 加载配置
	conf, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// 2. 初始化日志，stdout 留给 stdio 协议
	zlog.Init(zlog.Options{Level: conf.Level, LogPath: conf.LogPath})
	defer func() { _ = zlog.Sync() }()

	// 3. 初始化链路追踪
	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     conf.TelemetryConfig.Enabled,
		Endpoint:    conf.TelemetryConfig.Endpoint,
		ServiceName: conf.TelemetryConfig.ServiceName,
		Version:     conf.MCPConfig.Version,
	})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			zlog.Warn("关闭链路追踪失败", zap.Error(err))
		}
	}()

	// 4. 组装工具与协议层
	transports := config.ResolveTransports(opts.sse, opts.http, conf.Mode)
	a, err := newApp(conf, transports)
	if err != nil {
		return err
	}

	if transports.Stdio() {
		return stdio.Serve(ctx, a.protocol, os.Stdin, os.Stdout)
	}
	return a.serveHTTP(ctx, transports)
}

func newApp(conf *config.Config, transports config.Transports) (*app, error) {
	kbRepo, err := kbapi.NewKnowledgeRepository(conf.APIURL, time.Duration(conf.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("init knowledge repository: %w", err)
	}
	reg, err := mcpServer.BuildToolRegistry(kbRepo)
	if err != nil {
		return nil, fmt.Errorf("build tool registry: %w", err)
	}
	observer, err := telemetry.NewGlobalToolObserver()
	if err != nil {
		return nil, fmt.Errorf("init tool observer: %w", err)
	}
	builtin := mcpServer.NewBuiltinMCPServer(conf.MCPConfig.Name, conf.MCPConfig.Version, reg, observer)

	sessions := sse.NewSessionTable()
	var opts []server.ServerOption
	if transports.SSE {
		opts = append(opts, server.WithHooks(sessions.Hooks()))
	}
	protocol, err := mcpServer.NewProtocolServer(builtin, opts...)
	if err != nil {
		return nil, fmt.Errorf("init protocol server: %w", err)
	}

	zlog.Info("MCP tools registered", zap.Int("count", reg.Len()), zap.String("knowledge_api", conf.APIURL))
	return &app{conf: conf, builtin: builtin, protocol: protocol, sessions: sessions}, nil
}

// engine 按开启的传输挂载路由
func (a *app) engine(transports config.Transports) *gin.Engine {
	var registrars []apihttp.RouteRegistrar
	if transports.HTTP {
		dispatcher := service.NewToolDispatcher(a.builtin)
		registrars = append(registrars, restHandler.NewToolHandler(dispatcher, a.conf.MCPConfig.Version))
	}
	if transports.SSE {
		registrars = append(registrars, sse.NewHandler(a.protocol, a.sessions, sse.Options{
			SSEEndpoint:     a.conf.SSEEndpoint,
			MessageEndpoint: a.conf.MessageEndpoint,
			BaseURL:         a.conf.BaseURL,
			KeepAlive:       a.conf.KeepAlive,
		}))
	}
	return apihttp.NewEngine(a.conf, registrars...)
}

func (a *app) serveHTTP(ctx context.Context, transports config.Transports) error {
	if gin.Mode() == gin.DebugMode && os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := net.JoinHostPort(a.conf.Host, strconv.Itoa(a.conf.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a.engine(transports),
		ReadHeaderTimeout: 10 * time.Second,
		// 进程退出时取消所有请求上下文，SSE 流随之关闭
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if a.conf.TLSEnabled() {
			errCh <- srv.ServeTLS(ln, a.conf.CertFile, a.conf.KeyFile)
			return
		}
		errCh <- srv.Serve(ln)
	}()
	a.logEndpoints(transports)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zlog.Info("正在关闭服务器...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		zlog.Warn("等待连接结束超时，强制关闭", zap.Error(err))
		_ = srv.Close()
	}
	zlog.Info("服务器已关闭")
	return nil
}

func (a *app) logEndpoints(transports config.Transports) {
	scheme := "http"
	if a.conf.TLSEnabled() {
		scheme = "https"
	}
	host := a.conf.Host
	if host == "" {
		host = "localhost"
	}
	base := fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(host, strconv.Itoa(a.conf.Port)))

	if transports.SSE {
		zlog.Info("fund MCP Server running on SSE",
			zap.String("sse", base+a.conf.SSEEndpoint),
			zap.String("messages", base+a.conf.MessageEndpoint),
		)
	}
	if transports.HTTP {
		zlog.Info("fund MCP Server running on HTTP REST API",
			zap.String("tools", base+"/api/tools"),
			zap.String("call", base+"/api/tools/call"),
			zap.String("health", base+"/api/health"),
		)
	}
}
