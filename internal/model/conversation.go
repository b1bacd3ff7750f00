package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation 助手会话
// 同一会话 ID 可重复 upsert，每轮对话刷新 UpdatedAt
type Conversation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	TenantID  string    `gorm:"index;size:36" json:"tenant_id,omitempty"` // operator 人格才有值
	Persona   string    `gorm:"size:20" json:"persona"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ConversationMessage 会话消息（只追加，不修改）
type ConversationMessage struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string    `gorm:"index;size:36;not null" json:"conversation_id"`
	Role           string    `gorm:"size:20;not null" json:"role"` // user, assistant
	Content        string    `gorm:"type:text" json:"content"`
	Component      string    `gorm:"size:64" json:"component,omitempty"`       // 生成结构化结果的工具名
	ComponentData  JSONMap   `gorm:"type:jsonb" json:"component_data,omitempty"` // 该工具的执行结果
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversations"
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
