package model

import "time"

// 操作员角色（operator 人格的允许列表）
const (
	RoleAdmin        = "admin"
	RoleHouseManager = "house_manager"
	RoleStaff        = "staff"
	RoleSuperAdmin   = "super_admin"
	RoleResident     = "resident"
)

// AppUser 应用用户
// 身份与角色由上游认证方签发，这里只保存画像字段
type AppUser struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	DisplayName   string     `gorm:"size:255" json:"display_name"`
	Email         string     `gorm:"uniqueIndex;size:255" json:"email"`
	Role          string     `gorm:"size:50" json:"role"`
	TenantIDs     StringList `gorm:"type:jsonb" json:"tenant_ids"`
	SobrietyDate  *time.Time `json:"sobriety_date,omitempty"`
	RecoveryGoals StringList `gorm:"type:jsonb" json:"recovery_goals,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// MoodLog 心情记录（跨租户，挂在用户下）
type MoodLog struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	UserID   string    `gorm:"index;size:36;not null" json:"user_id"`
	Mood     string    `gorm:"size:20;not null" json:"mood"` // great, good, okay, struggling, crisis
	Note     string    `gorm:"type:text" json:"note"`
	LoggedAt time.Time `gorm:"autoCreateTime" json:"logged_at"`
}

// TableName 指定表名
func (AppUser) TableName() string {
	return "app_users"
}

func (MoodLog) TableName() string {
	return "mood_logs"
}
