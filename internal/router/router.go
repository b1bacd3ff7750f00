// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hvglabs/hvg-assist/internal/handler"
	"github.com/hvglabs/hvg-assist/internal/middleware"
	"github.com/hvglabs/hvg-assist/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Assistant AI 助手
		as := v1.Group("/assistant", middleware.RequireAuth(svc))
		{
			as.POST("/chat", h.Assistant.Chat)
			as.GET("/conversations", h.Assistant.ListConversations)
			as.GET("/conversations/:id/messages", h.Assistant.History)
		}
	}

	return r
}
