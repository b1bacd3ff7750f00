// Package assistant 提供聊天编排器单元测试
package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	appmodel "github.com/hvglabs/hvg-assist/internal/model"
)

// ========== Mock ChatModel ==========

type mockToolCallingChatModel struct {
	responses []*schema.Message
	err       error
	callCount int

	boundTools []*schema.ToolInfo
	messages   [][]*schema.Message
}

func (m *mockToolCallingChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.messages = append(m.messages, messages)
	if m.err != nil {
		return nil, m.err
	}
	if m.callCount >= len(m.responses) {
		return &schema.Message{Role: schema.Assistant, Content: "default reply"}, nil
	}
	resp := m.responses[m.callCount]
	m.callCount++
	return resp, nil
}

func (m *mockToolCallingChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported in mock")
}

func (m *mockToolCallingChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	m.boundTools = tools
	return m, nil
}

// ========== Mock ToolRunner ==========

type mockToolRunner struct {
	payloads map[string]map[string]interface{}
	executed []string
}

func (m *mockToolRunner) Execute(ctx context.Context, persona Persona, name, rawArgs string, caller *CallerContext, tenantID string) map[string]interface{} {
	m.executed = append(m.executed, name)
	if payload, ok := m.payloads[name]; ok {
		return payload
	}
	return map[string]interface{}{"ok": true}
}

// ========== Mock HistoryStore ==========

type mockHistoryStore struct {
	history    []*appmodel.ConversationMessage
	historyErr error
	appendErr  error

	historyCalls  []string
	appendedConv  *appmodel.Conversation
	appendedUser  *appmodel.ConversationMessage
	appendedReply *appmodel.ConversationMessage
}

func (m *mockHistoryStore) History(ctx context.Context, conversationID string, limit int) ([]*appmodel.ConversationMessage, error) {
	m.historyCalls = append(m.historyCalls, conversationID)
	return m.history, m.historyErr
}

func (m *mockHistoryStore) AppendTurn(ctx context.Context, conv *appmodel.Conversation, userMsg, assistantMsg *appmodel.ConversationMessage) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appendedConv = conv
	m.appendedUser = userMsg
	m.appendedReply = assistantMsg
	return nil
}

func residentCaller() *CallerContext {
	return &CallerContext{UID: "res-1", Role: "resident", DisplayName: "Jamie"}
}

func operatorCaller() *CallerContext {
	return &CallerContext{UID: "op-1", Role: "house_manager", DisplayName: "Morgan", TenantIDs: []string{"t-1"}}
}

// ========== 测试 ==========

func TestChatPlainReply(t *testing.T) {
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{{Role: schema.Assistant, Content: "You are doing great."}},
	}
	store := &mockHistoryStore{}
	o := NewOrchestrator(chatModel, &mockToolRunner{}, store, 20)

	resp, err := o.Chat(context.Background(), residentCaller(), &ChatRequest{Message: "How am I doing?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Reply != "You are doing great." {
		t.Errorf("unexpected reply: %s", resp.Reply)
	}
	if resp.Persona != string(PersonaRecovery) {
		t.Errorf("expected recovery persona, got %s", resp.Persona)
	}
	if resp.ConversationID == "" {
		t.Error("expected a generated conversation ID")
	}
	if resp.Component != "" || resp.ComponentData != nil {
		t.Error("plain reply should not carry a component")
	}
	if len(store.historyCalls) != 0 {
		t.Error("new conversation should not load history")
	}
	if store.appendedConv == nil || store.appendedConv.ID != resp.ConversationID {
		t.Error("turn should be persisted under the returned conversation ID")
	}
	if !store.appendedReply.CreatedAt.After(store.appendedUser.CreatedAt) {
		t.Error("assistant message must sort after the user message")
	}
}

func TestChatSystemPromptAndHistory(t *testing.T) {
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{{Role: schema.Assistant, Content: "ok"}},
	}
	store := &mockHistoryStore{
		history: []*appmodel.ConversationMessage{
			{Role: appmodel.RoleUser, Content: "earlier question"},
			{Role: appmodel.RoleAssistant, Content: "earlier answer"},
		},
	}
	o := NewOrchestrator(chatModel, &mockToolRunner{}, store, 20)

	_, err := o.Chat(context.Background(), residentCaller(), &ChatRequest{
		Message:        "follow-up",
		ConversationID: "conv-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.historyCalls) != 1 || store.historyCalls[0] != "conv-1" {
		t.Fatalf("expected history load for conv-1, got %v", store.historyCalls)
	}

	sent := chatModel.messages[0]
	// system + 2 条历史 + 本轮用户消息
	if len(sent) != 4 {
		t.Fatalf("expected 4 messages sent to model, got %d", len(sent))
	}
	if sent[0].Role != schema.System {
		t.Error("first message must be the system prompt")
	}
	if sent[1].Content != "earlier question" || sent[2].Content != "earlier answer" {
		t.Error("history should be replayed in order")
	}
	if sent[3].Content != "follow-up" {
		t.Error("last message must be the current user message")
	}
}

func TestChatToolCallFlow(t *testing.T) {
	toolCall := schema.ToolCall{
		ID:       "call-1",
		Function: schema.FunctionCall{Name: ToolGetSobrietyStats, Arguments: "{}"},
	}
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: "", ToolCalls: []schema.ToolCall{toolCall}},
			{Role: schema.Assistant, Content: "You have been sober 100 days!"},
		},
	}
	runner := &mockToolRunner{
		payloads: map[string]map[string]interface{}{
			ToolGetSobrietyStats: {"daysSober": 100},
		},
	}
	store := &mockHistoryStore{}
	o := NewOrchestrator(chatModel, runner, store, 20)

	resp, err := o.Chat(context.Background(), residentCaller(), &ChatRequest{Message: "How long sober?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Reply != "You have been sober 100 days!" {
		t.Errorf("unexpected reply: %s", resp.Reply)
	}
	if resp.Component != ToolGetSobrietyStats {
		t.Errorf("component should be the first tool name, got %s", resp.Component)
	}
	if resp.ComponentData["daysSober"] != 100 {
		t.Errorf("unexpected component data: %v", resp.ComponentData)
	}
	if len(runner.executed) != 1 || runner.executed[0] != ToolGetSobrietyStats {
		t.Errorf("unexpected executed tools: %v", runner.executed)
	}

	// 跟进调用要带上助手的工具调用消息和工具结果
	followUp := chatModel.messages[1]
	last := followUp[len(followUp)-1]
	if last.Role != schema.Tool {
		t.Errorf("expected tool message before follow-up, got role %s", last.Role)
	}
	if store.appendedReply.Component != ToolGetSobrietyStats {
		t.Error("persisted assistant message should record the component")
	}
}

func TestChatMultipleToolCallsFirstWinsComponent(t *testing.T) {
	calls := []schema.ToolCall{
		{ID: "call-1", Function: schema.FunctionCall{Name: ToolGetPendingChores, Arguments: "{}"}},
		{ID: "call-2", Function: schema.FunctionCall{Name: ToolGetRideRequests, Arguments: "{}"}},
	}
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, ToolCalls: calls},
			{Role: schema.Assistant, Content: "Here is the overview."},
		},
	}
	runner := &mockToolRunner{
		payloads: map[string]map[string]interface{}{
			ToolGetPendingChores: {"chores": []interface{}{}},
			ToolGetRideRequests:  {"rides": []interface{}{}},
		},
	}
	o := NewOrchestrator(chatModel, runner, &mockHistoryStore{}, 20)

	resp, err := o.Chat(context.Background(), operatorCaller(), &ChatRequest{Message: "status"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Component != ToolGetPendingChores {
		t.Errorf("first tool call should win the component slot, got %s", resp.Component)
	}
	if len(runner.executed) != 2 {
		t.Errorf("both tools should execute, got %v", runner.executed)
	}
	if resp.Persona != string(PersonaOperator) {
		t.Errorf("expected operator persona, got %s", resp.Persona)
	}
}

func TestChatValidation(t *testing.T) {
	o := NewOrchestrator(&mockToolCallingChatModel{}, &mockToolRunner{}, &mockHistoryStore{}, 20)

	tests := []struct {
		name       string
		caller     *CallerContext
		req        *ChatRequest
		wantStatus int
	}{
		{"nil caller", nil, &ChatRequest{Message: "hi"}, 401},
		{"empty uid", &CallerContext{}, &ChatRequest{Message: "hi"}, 401},
		{"empty message", residentCaller(), &ChatRequest{}, 400},
		{"operator without tenant", &CallerContext{UID: "op-1", Role: "admin"}, &ChatRequest{Message: "hi"}, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Chat(context.Background(), tt.caller, tt.req)
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.Status != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, statusErr.Status)
			}
		})
	}
}

func TestChatPersistFailureFailsRequest(t *testing.T) {
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{{Role: schema.Assistant, Content: "reply"}},
	}
	store := &mockHistoryStore{appendErr: errors.New("db down")}
	o := NewOrchestrator(chatModel, &mockToolRunner{}, store, 20)

	_, err := o.Chat(context.Background(), residentCaller(), &ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
}

func TestChatModelErrorPropagates(t *testing.T) {
	chatModel := &mockToolCallingChatModel{err: errors.New("rate limited")}
	store := &mockHistoryStore{}
	o := NewOrchestrator(chatModel, &mockToolRunner{}, store, 20)

	_, err := o.Chat(context.Background(), residentCaller(), &ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected error from model failure")
	}
	if store.appendedConv != nil {
		t.Error("failed turn must not be persisted")
	}
}

func TestChatBindsPersonaTools(t *testing.T) {
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{{Role: schema.Assistant, Content: "ok"}},
	}
	o := NewOrchestrator(chatModel, &mockToolRunner{}, &mockHistoryStore{}, 20)

	if _, err := o.Chat(context.Background(), operatorCaller(), &ChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chatModel.boundTools) != len(ToolInfos(PersonaOperator)) {
		t.Errorf("expected operator tool set bound, got %d tools", len(chatModel.boundTools))
	}
}

func TestChatPersistTimestamps(t *testing.T) {
	chatModel := &mockToolCallingChatModel{
		responses: []*schema.Message{{Role: schema.Assistant, Content: "ok"}},
	}
	store := &mockHistoryStore{}
	o := NewOrchestrator(chatModel, &mockToolRunner{}, store, 20)
	fixed := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	o.now = func() time.Time { return fixed }

	if _, err := o.Chat(context.Background(), residentCaller(), &ChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !store.appendedUser.CreatedAt.Equal(fixed) {
		t.Errorf("user message timestamp = %v, want %v", store.appendedUser.CreatedAt, fixed)
	}
	if got := store.appendedReply.CreatedAt.Sub(store.appendedUser.CreatedAt); got != time.Millisecond {
		t.Errorf("assistant message should trail user message by 1ms, got %v", got)
	}
}
