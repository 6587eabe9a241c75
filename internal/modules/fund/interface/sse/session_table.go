package sse

import (
	"context"
	"sync"
	"time"

	"FundMCP/pkg/zlog"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// SessionTable SSE 会话表
// 流建立时写入，流关闭时删除，避免会话无限增长
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
}

func NewSessionTable() *SessionTable {
	return &SessionTable{
		sessions: make(map[string]time.Time),
	}
}

func (t *SessionTable) Add(id string) {
	if id == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[id] = time.Now()
}

func (t *SessionTable) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

func (t *SessionTable) Has(id string) bool {
	if id == "" {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.sessions[id]
	return ok
}

func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}

// Hooks 挂到 mcp-go Server 上，随会话注册/注销同步会话表
func (t *SessionTable) Hooks() *server.Hooks {
	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		t.Add(session.SessionID())
		zlog.Info("sse session opened", zap.String("session_id", session.SessionID()), zap.Int("sessions", t.Len()))
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		t.Remove(session.SessionID())
		zlog.Info("sse session closed", zap.String("session_id", session.SessionID()), zap.Int("sessions", t.Len()))
	})
	return hooks
}
