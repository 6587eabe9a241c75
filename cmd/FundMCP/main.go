package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"FundMCP/internal/config"
	"FundMCP/pkg/zlog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	sse        bool
	http       bool
}

func main() {
	// 1. 收到 SIGINT/SIGTERM 时取消 ctx，各传输据此退出
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. 启动失败退出码为 1，正常中断为 0
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		zlog.Error("服务器启动失败", zap.Error(err))
		_ = zlog.Sync()
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fund-mcp-server",
		Short:         "Fund MCP Server: fund.echo 与 fund.knoewledge 工具",
		Long:          "默认走 stdio；--sse 开启 SSE 传输，--http 开启 REST 接口，也可用 MCP_TRANSPORT=sse|http 选择",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML 配置文件路径，默认读取 FUND_CONFIG 或 "+config.DefaultConfigPath)
	flags := cmd.Flags()
	flags.BoolVar(&opts.sse, "sse", false, "启用 SSE 传输 (GET /sse, POST /messages)")
	flags.BoolVar(&opts.http, "http", false, "启用 REST 接口 (/api/tools, /api/tools/call, /api/health)")

	cmd.AddCommand(newVersionCmd(opts))
	return cmd
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "打印服务名与版本",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", conf.MCPConfig.Name, conf.MCPConfig.Version)
			return err
		},
	}
}
