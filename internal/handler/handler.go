// Package handler 提供 HTTP 处理器
package handler

import (
	"github.com/hvglabs/hvg-assist/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Assistant *AssistantHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Assistant: NewAssistantHandler(svc),
	}
}
