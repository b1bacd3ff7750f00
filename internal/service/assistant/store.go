package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hvglabs/hvg-assist/internal/model"
)

// ConversationRepo 会话持久化接口
type ConversationRepo interface {
	AppendTurn(conv *model.Conversation, userMsg, assistantMsg *model.ConversationMessage) error
	GetByID(id string) (*model.Conversation, error)
	ListByUser(userID string, limit int) ([]*model.Conversation, error)
	RecentMessages(conversationID string, limit int) ([]*model.ConversationMessage, error)
}

// ConversationStore 会话存储服务
// 在仓储之上加一层 Redis 历史缓存，redisClient 为 nil 时缓存关闭
type ConversationStore struct {
	repo        ConversationRepo
	redisClient *redis.Client
	cacheTTL    time.Duration
}

// NewConversationStore 创建会话存储服务
func NewConversationStore(repo ConversationRepo, redisClient *redis.Client, cacheTTL time.Duration) *ConversationStore {
	return &ConversationStore{
		repo:        repo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// History 获取会话最近消息（时间升序）
// 优先读缓存，未命中时回源数据库并写回
func (s *ConversationStore) History(ctx context.Context, conversationID string, limit int) ([]*model.ConversationMessage, error) {
	key := s.historyKey(conversationID, limit)

	if s.redisClient != nil {
		data, err := s.redisClient.Get(ctx, key).Result()
		if err == nil {
			var messages []*model.ConversationMessage
			if err := json.Unmarshal([]byte(data), &messages); err == nil {
				return messages, nil
			}
			log.Printf("Warning: failed to decode cached history for %s: %v", conversationID, err)
		} else if err != redis.Nil {
			log.Printf("Warning: failed to read history cache: %v", err)
		}
	}

	messages, err := s.repo.RecentMessages(conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(messages); err == nil {
			if err := s.redisClient.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				log.Printf("Warning: failed to write history cache: %v", err)
			}
		}
	}

	return messages, nil
}

// AppendTurn 原子写入一轮对话并使历史缓存失效
func (s *ConversationStore) AppendTurn(ctx context.Context, conv *model.Conversation, userMsg, assistantMsg *model.ConversationMessage) error {
	if err := s.repo.AppendTurn(conv, userMsg, assistantMsg); err != nil {
		return fmt.Errorf("failed to persist conversation turn: %w", err)
	}

	if s.redisClient != nil {
		pattern := fmt.Sprintf("assistant:history:%s:*", conv.ID)
		keys, err := s.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			log.Printf("Warning: failed to scan history cache keys: %v", err)
			return nil
		}
		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				log.Printf("Warning: failed to invalidate history cache: %v", err)
			}
		}
	}

	return nil
}

// Get 获取会话
func (s *ConversationStore) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	return s.repo.GetByID(conversationID)
}

// ListByUser 列出用户的会话（按更新时间倒序）
func (s *ConversationStore) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Conversation, error) {
	return s.repo.ListByUser(userID, limit)
}

func (s *ConversationStore) historyKey(conversationID string, limit int) string {
	return fmt.Sprintf("assistant:history:%s:%d", conversationID, limit)
}
