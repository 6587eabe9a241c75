package config

import "strings"

const (
	TransportSSE  = "sse"
	TransportHTTP = "http"
)

// Transports 启动时确定的传输方式
// SSE 与 HTTP 可同时开启并共用一个 HTTP Server，二者都关闭时使用 stdio
type Transports struct {
	SSE  bool
	HTTP bool
}

// Stdio 是否走标准输入输出
func (t Transports) Stdio() bool {
	return !t.SSE && !t.HTTP
}

// ResolveTransports 命令行 flag 与 MCP_TRANSPORT 任一命中即开启
func ResolveTransports(sseFlag, httpFlag bool, mode string) Transports {
	mode = strings.TrimSpace(mode)
	return Transports{
		SSE:  sseFlag || mode == TransportSSE,
		HTTP: httpFlag || mode == TransportHTTP,
	}
}
