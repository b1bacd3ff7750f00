package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hvglabs/hvg-assist/internal/middleware"
	"github.com/hvglabs/hvg-assist/internal/service"
	"github.com/hvglabs/hvg-assist/internal/service/assistant"
)

// AssistantHandler AI 助手处理器
type AssistantHandler struct {
	svc *service.Services
}

// NewAssistantHandler 创建 AI 助手处理器
func NewAssistantHandler(svc *service.Services) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Chat 处理一轮聊天
// routeContext 传路径时翻译成页面提示，传文本时原样注入提示词
func (h *AssistantHandler) Chat(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if strings.HasPrefix(req.RouteContext, "/") {
		req.RouteContext = assistant.RouteHint(req.RouteContext)
	}

	resp, err := h.svc.Assistant.Chat(c.Request.Context(), caller, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp)
}

// History 获取会话历史消息
// 只能读自己的会话，他人会话一律 404
func (h *AssistantHandler) History(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	conversationID := c.Param("id")

	conv, err := h.svc.Conversations.Get(c.Request.Context(), conversationID)
	if err != nil || conv == nil || conv.UserID != caller.UID {
		NotFound(c, "conversation not found")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	messages, err := h.svc.Conversations.History(c.Request.Context(), conversationID, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"conversationId": conversationID,
		"persona":        conv.Persona,
		"messages":       messages,
	})
}

// ListConversations 列出当前用户的会话
func (h *AssistantHandler) ListConversations(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	conversations, err := h.svc.Conversations.ListByUser(c.Request.Context(), caller.UID, limit)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"conversations": conversations})
}
