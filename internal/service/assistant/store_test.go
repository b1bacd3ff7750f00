package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hvglabs/hvg-assist/internal/model"
)

// ========== Mock ConversationRepo ==========

type mockConversationRepo struct {
	messages      []*model.ConversationMessage
	conversations []*model.Conversation
	err           error

	appendCalls int
	lastConv    *model.Conversation
}

func (m *mockConversationRepo) AppendTurn(conv *model.Conversation, userMsg, assistantMsg *model.ConversationMessage) error {
	if m.err != nil {
		return m.err
	}
	m.appendCalls++
	m.lastConv = conv
	return nil
}

func (m *mockConversationRepo) GetByID(id string) (*model.Conversation, error) {
	for _, conv := range m.conversations {
		if conv.ID == id {
			return conv, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockConversationRepo) ListByUser(userID string, limit int) ([]*model.Conversation, error) {
	return m.conversations, m.err
}

func (m *mockConversationRepo) RecentMessages(conversationID string, limit int) ([]*model.ConversationMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func TestHistoryWithoutRedis(t *testing.T) {
	repo := &mockConversationRepo{
		messages: []*model.ConversationMessage{
			{ID: "m-1", Role: model.RoleUser, Content: "hello"},
			{ID: "m-2", Role: model.RoleAssistant, Content: "hi there"},
		},
	}
	store := NewConversationStore(repo, nil, 5*time.Minute)

	messages, err := store.History(context.Background(), "conv-1", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
}

func TestHistoryRepoError(t *testing.T) {
	repo := &mockConversationRepo{err: errors.New("db down")}
	store := NewConversationStore(repo, nil, 5*time.Minute)

	if _, err := store.History(context.Background(), "conv-1", 20); err == nil {
		t.Fatal("expected error from repo failure")
	}
}

func TestAppendTurnDelegates(t *testing.T) {
	repo := &mockConversationRepo{}
	store := NewConversationStore(repo, nil, 5*time.Minute)

	conv := &model.Conversation{ID: "conv-1", UserID: "res-1", Persona: string(PersonaRecovery)}
	err := store.AppendTurn(context.Background(), conv,
		&model.ConversationMessage{ID: "m-1", Role: model.RoleUser},
		&model.ConversationMessage{ID: "m-2", Role: model.RoleAssistant},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.appendCalls != 1 || repo.lastConv.ID != "conv-1" {
		t.Errorf("append not delegated: calls=%d", repo.appendCalls)
	}
}

func TestGetUnknownConversation(t *testing.T) {
	store := NewConversationStore(&mockConversationRepo{}, nil, 5*time.Minute)

	if _, err := store.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown conversation")
	}
}
