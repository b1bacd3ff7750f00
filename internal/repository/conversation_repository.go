package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hvglabs/hvg-assist/internal/model"
)

// ConversationRepository 会话数据访问
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话仓库
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// AppendTurn 原子写入一轮对话
// 会话元数据 upsert 与两条消息插入在同一事务内，避免崩溃时出现
// 只有用户消息没有助手回复（或相反）的半截对话
func (r *ConversationRepository) AppendTurn(conv *model.Conversation, userMsg, assistantMsg *model.ConversationMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"persona", "tenant_id", "updated_at"}),
		}).Create(conv).Error; err != nil {
			return err
		}
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		return tx.Create(assistantMsg).Error
	})
}

// GetByID 获取会话
func (r *ConversationRepository) GetByID(id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListByUser 列出用户的会话，按更新时间倒序
func (r *ConversationRepository) ListByUser(userID string, limit int) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

// RecentMessages 获取会话最近的 limit 条消息，按创建时间升序返回
func (r *ConversationRepository) RecentMessages(conversationID string, limit int) ([]*model.ConversationMessage, error) {
	var messages []*model.ConversationMessage
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// 倒序查出最近 N 条后反转为时间升序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
