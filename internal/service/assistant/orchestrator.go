package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	appmodel "github.com/hvglabs/hvg-assist/internal/model"
)

// ToolRunner 工具执行接口
type ToolRunner interface {
	Execute(ctx context.Context, persona Persona, name, rawArgs string, caller *CallerContext, tenantID string) map[string]interface{}
}

// HistoryStore 会话读写接口
type HistoryStore interface {
	History(ctx context.Context, conversationID string, limit int) ([]*appmodel.ConversationMessage, error)
	AppendTurn(ctx context.Context, conv *appmodel.Conversation, userMsg, assistantMsg *appmodel.ConversationMessage) error
}

// ChatRequest 聊天请求
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
	RouteContext   string `json:"routeContext"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	Reply          string                 `json:"reply"`
	ConversationID string                 `json:"conversationId"`
	Persona        string                 `json:"persona"`
	Component      string                 `json:"component,omitempty"`
	ComponentData  map[string]interface{} `json:"componentData,omitempty"`
}

// Orchestrator 聊天编排器
// 负责一轮对话的完整流程：角色解析、历史加载、模型调用、工具执行、持久化
type Orchestrator struct {
	chatModel    model.ToolCallingChatModel
	executor     ToolRunner
	store        HistoryStore
	historyLimit int
	now          func() time.Time
}

// NewOrchestrator 创建聊天编排器
func NewOrchestrator(chatModel model.ToolCallingChatModel, executor ToolRunner, store HistoryStore, historyLimit int) *Orchestrator {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &Orchestrator{
		chatModel:    chatModel,
		executor:     executor,
		store:        store,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// toolResult 单次工具调用的执行结果，保持与请求相同的顺序
type toolResult struct {
	call    schema.ToolCall
	payload map[string]interface{}
}

// Chat 处理一轮聊天
func (o *Orchestrator) Chat(ctx context.Context, caller *CallerContext, req *ChatRequest) (*ChatResponse, error) {
	if caller == nil || caller.UID == "" {
		return nil, NewUnauthorized("authentication required")
	}
	if req.Message == "" {
		return nil, NewBadRequest("message is required")
	}

	persona := ResolvePersona(caller.Role)

	var tenantID string
	if persona.TenantRequired() {
		if len(caller.TenantIDs) == 0 {
			return nil, NewForbidden("no tenant assigned to operator account")
		}
		tenantID = caller.TenantIDs[0]
	}

	conversationID := req.ConversationID
	continuing := conversationID != ""
	if !continuing {
		conversationID = uuid.New().String()
	}

	// 组装模型输入：system + 历史 + 本轮用户消息
	messages := []*schema.Message{
		schema.SystemMessage(BuildSystemPrompt(persona, caller, tenantID, req.RouteContext)),
	}
	if continuing {
		history, err := o.store.History(ctx, conversationID, o.historyLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		for _, msg := range history {
			switch msg.Role {
			case appmodel.RoleUser:
				messages = append(messages, schema.UserMessage(msg.Content))
			case appmodel.RoleAssistant:
				messages = append(messages, schema.AssistantMessage(msg.Content, nil))
			}
		}
	}
	messages = append(messages, schema.UserMessage(req.Message))

	toolModel, err := o.chatModel.WithTools(ToolInfos(persona))
	if err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	resp, err := toolModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}

	reply := resp.Content
	var component string
	var componentData map[string]interface{}

	if len(resp.ToolCalls) > 0 {
		results := o.runToolCalls(ctx, persona, resp.ToolCalls, caller, tenantID)

		// 首个工具调用决定前端渲染的结构化组件
		first := results[0]
		component = first.call.Function.Name
		componentData = first.payload

		messages = append(messages, schema.AssistantMessage(resp.Content, resp.ToolCalls))
		for _, result := range results {
			payload, err := json.Marshal(result.payload)
			if err != nil {
				payload = []byte(`{"error": "failed to encode tool result"}`)
			}
			messages = append(messages, schema.ToolMessage(string(payload), result.call.ID, schema.WithToolName(result.call.Function.Name)))
		}

		// 跟进调用不带工具，强制模型产出最终文本回复
		followUp, err := o.chatModel.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("failed to generate follow-up response: %w", err)
		}
		reply = followUp.Content
	}

	if err := o.persistTurn(ctx, caller, persona, tenantID, conversationID, req.Message, reply, component, componentData); err != nil {
		return nil, err
	}

	return &ChatResponse{
		Reply:          reply,
		ConversationID: conversationID,
		Persona:        string(persona),
		Component:      component,
		ComponentData:  componentData,
	}, nil
}

// runToolCalls 并发执行工具调用，结果按请求顺序返回
func (o *Orchestrator) runToolCalls(ctx context.Context, persona Persona, calls []schema.ToolCall, caller *CallerContext, tenantID string) []toolResult {
	results := make([]toolResult, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call schema.ToolCall) {
			defer wg.Done()
			log.Printf("Executing tool %s for user %s", call.Function.Name, caller.UID)
			results[i] = toolResult{
				call:    call,
				payload: o.executor.Execute(ctx, persona, call.Function.Name, call.Function.Arguments, caller, tenantID),
			}
		}(i, call)
	}
	wg.Wait()
	return results
}

// persistTurn 原子持久化本轮对话
// 助手消息时间戳加 1ms，保证历史排序对同毫秒写入也是确定的
func (o *Orchestrator) persistTurn(ctx context.Context, caller *CallerContext, persona Persona, tenantID, conversationID, userText, reply, component string, componentData map[string]interface{}) error {
	now := o.now()

	conv := &appmodel.Conversation{
		ID:       conversationID,
		UserID:   caller.UID,
		TenantID: tenantID,
		Persona:  string(persona),
	}
	userMsg := &appmodel.ConversationMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           appmodel.RoleUser,
		Content:        userText,
		CreatedAt:      now,
	}
	assistantMsg := &appmodel.ConversationMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           appmodel.RoleAssistant,
		Content:        reply,
		Component:      component,
		ComponentData:  appmodel.JSONMap(componentData),
		CreatedAt:      now.Add(time.Millisecond),
	}

	if err := o.store.AppendTurn(ctx, conv, userMsg, assistantMsg); err != nil {
		return fmt.Errorf("failed to persist conversation: %w", err)
	}
	return nil
}
