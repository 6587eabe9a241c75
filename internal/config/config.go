package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigPath      = "configs/config_local.toml"
	DefaultKnowledgeAPIURL = "https://report.haiyu.datavita.com.cn/api/admin/knowledge/query"
	DefaultPort            = 3000
	DefaultVersion         = "1.0.0"
)

type MainConfig struct {
	AppName  string `toml:"appName"`
	Host     string `toml:"host"     env:"HOST"`
	Port     int    `toml:"port"     env:"PORT"`
	CertFile string `toml:"certFile" env:"FUND_TLS_CERT"`
	KeyFile  string `toml:"keyFile"  env:"FUND_TLS_KEY"`
}

// TransportConfig 传输方式，取值 sse | http，为空表示 stdio
type TransportConfig struct {
	Mode string `toml:"mode" env:"MCP_TRANSPORT"`
}

// KnowledgeConfig 知识库接口配置
type KnowledgeConfig struct {
	APIURL string `toml:"apiURL" env:"FUND_KB_API_URL"`
	// 0 表示不设超时，交给 HTTP 客户端默认行为
	TimeoutSeconds int `toml:"timeoutSeconds" env:"FUND_KB_TIMEOUT_SECONDS"`
}

// MCPConfig MCP Server 配置
type MCPConfig struct {
	Name            string `toml:"name"`
	Version         string `toml:"version"`
	SSEEndpoint     string `toml:"sseEndpoint"`
	MessageEndpoint string `toml:"messageEndpoint"`
	BaseURL         string `toml:"baseURL" env:"FUND_MCP_BASE_URL"`
	KeepAlive       bool   `toml:"keepAlive"`
}

type LogConfig struct {
	LogPath string `toml:"logPath" env:"FUND_LOG_PATH"`
	Level   string `toml:"level"   env:"FUND_LOG_LEVEL"`
}

// TelemetryConfig OpenTelemetry 链路追踪，Endpoint 为空时关闭
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"     env:"FUND_OTEL_ENABLED"`
	Endpoint    string `toml:"endpoint"    env:"FUND_OTEL_ENDPOINT"`
	ServiceName string `toml:"serviceName"`
}

type Config struct {
	MainConfig      `toml:"mainConfig"`
	TransportConfig `toml:"transportConfig"`
	KnowledgeConfig `toml:"knowledgeConfig"`
	MCPConfig       `toml:"mcpConfig"`
	LogConfig       `toml:"logConfig"`
	TelemetryConfig `toml:"telemetryConfig"`
}

// TLSEnabled 同时配置了证书与私钥
func (c *Config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "fund-mcp-server",
			Port:    DefaultPort,
		},
		KnowledgeConfig: KnowledgeConfig{
			APIURL: DefaultKnowledgeAPIURL,
		},
		MCPConfig: MCPConfig{
			Name:            "fund-mcp-server",
			Version:         DefaultVersion,
			SSEEndpoint:     "/sse",
			MessageEndpoint: "/messages",
		},
		LogConfig: LogConfig{
			Level: "info",
		},
		TelemetryConfig: TelemetryConfig{
			Enabled:     true,
			ServiceName: "fund-mcp-server",
		},
	}
}

// Load 依次叠加: 默认值 -> TOML 文件 -> .env -> 环境变量
// 配置文件不存在不算错误
func Load(path string) (*Config, error) {
	conf := Default()

	if path == "" {
		path = os.Getenv("FUND_CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := toml.DecodeFile(path, conf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	// 已存在的环境变量优先于 .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	conf.normalize()
	return conf, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.Port <= 0 {
		c.Port = def.Port
	}
	if c.APIURL == "" {
		c.APIURL = def.APIURL
	}
	if c.MCPConfig.Name == "" {
		c.MCPConfig.Name = def.MCPConfig.Name
	}
	if c.MCPConfig.Version == "" {
		c.MCPConfig.Version = def.MCPConfig.Version
	}
	if c.SSEEndpoint == "" {
		c.SSEEndpoint = def.SSEEndpoint
	}
	if c.MessageEndpoint == "" {
		c.MessageEndpoint = def.MessageEndpoint
	}
	if c.TelemetryConfig.ServiceName == "" {
		c.TelemetryConfig.ServiceName = def.TelemetryConfig.ServiceName
	}
}
