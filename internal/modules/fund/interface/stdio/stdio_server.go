package stdio

import (
	"context"
	"errors"
	"io"

	"FundMCP/internal/telemetry"
	"FundMCP/pkg/zlog"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const TransportName = "stdio"

// Serve 在 in/out 上运行 MCP 协议，直到 ctx 取消或输入结束
// out 只承载协议帧，日志统一走 stderr
func Serve(ctx context.Context, protocol *server.MCPServer, in io.Reader, out io.Writer) error {
	s := server.NewStdioServer(protocol)
	s.SetErrorLogger(zap.NewStdLog(zlog.L().Named("stdio")))
	s.SetContextFunc(func(ctx context.Context) context.Context {
		return telemetry.WithTransport(ctx, TransportName)
	})

	zlog.Info("fund MCP Server running on stdio")
	err := s.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
