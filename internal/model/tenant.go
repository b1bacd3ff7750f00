// Package model 提供租户域的数据模型
package model

import "time"

// 通用状态值
const (
	StatusPending       = "pending"
	StatusInProgress    = "in_progress"
	StatusScheduled     = "scheduled"
	StatusActive        = "active"
	StatusDraft         = "draft"
	StatusReviewPending = "review_pending"
)

// Event 租户日历事件
type Event struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string    `gorm:"index;size:36;not null" json:"tenant_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Location    string    `gorm:"size:255" json:"location,omitempty"`
	Type        string    `gorm:"size:50;default:general" json:"type"`
	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`
	CreatedBy   string    `gorm:"size:36" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Chore 家务任务
// AssigneeIDs 为空表示全员（house-wide）任务
type Chore struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string     `gorm:"index;size:36;not null" json:"tenant_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	AssigneeIDs StringList `gorm:"type:jsonb" json:"assignee_ids"`
	Priority    string     `gorm:"size:20;default:medium" json:"priority"` // low, medium, high
	Status      string     `gorm:"index;size:20;default:pending" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `gorm:"size:36" json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Ride 接送请求
type Ride struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string    `gorm:"index;size:36;not null" json:"tenant_id"`
	ResidentID  string    `gorm:"index;size:36" json:"resident_id"`
	Destination string    `gorm:"size:255" json:"destination"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `gorm:"index;size:20;default:pending" json:"status"` // pending, scheduled
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// JoinRequest 入住申请
type JoinRequest struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string    `gorm:"index;size:36;not null" json:"tenant_id"`
	DisplayName string    `gorm:"size:255" json:"display_name"`
	Email       string    `gorm:"size:255" json:"email"`
	Status      string    `gorm:"index;size:20;default:pending" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Course LMS 课程
type Course struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string     `gorm:"index;size:36;not null" json:"tenant_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Modules     StringList `gorm:"type:jsonb" json:"modules"`
	Status      string     `gorm:"size:20;default:draft" json:"status"`
	CreatedBy   string     `gorm:"size:36" json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Incident 事故报告
type Incident struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	TenantID          string     `gorm:"index;size:36;not null" json:"tenant_id"`
	Summary           string     `gorm:"type:text" json:"summary"`
	IncidentDate      time.Time  `json:"incident_date"`
	InvolvedResidents StringList `gorm:"type:jsonb" json:"involved_residents"`
	Status            string     `gorm:"size:30;default:review_pending" json:"status"`
	CreatedBy         string     `gorm:"size:36" json:"created_by"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Enrollment 住户在某租户的在住记录
type Enrollment struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TenantID   string    `gorm:"index;size:36;not null" json:"tenant_id"`
	ResidentID string    `gorm:"index;size:36;not null" json:"resident_id"`
	Status     string    `gorm:"index;size:20;default:active" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Event) TableName() string       { return "events" }
func (Chore) TableName() string       { return "chores" }
func (Ride) TableName() string        { return "rides" }
func (JoinRequest) TableName() string { return "join_requests" }
func (Course) TableName() string      { return "courses" }
func (Incident) TableName() string    { return "incidents" }
func (Enrollment) TableName() string  { return "enrollments" }
