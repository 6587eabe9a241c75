package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateShortUUID 生成一个不带中划线的短 UUID
func GenerateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// RequestIDOrNew 上游已带合法请求 ID 时沿用，否则生成新的
func RequestIDOrNew(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming != "" && len(incoming) <= 64 {
		return incoming
	}
	return GenerateShortUUID()
}
