package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hvglabs/hvg-assist/internal/model"
)

// TenantRepository 租户域数据访问
// 所有查询都以 tenant_id 为第一过滤条件，保证租户隔离
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository 创建租户仓库
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// UpcomingEvents 获取时间窗口内的事件，按时间升序
func (r *TenantRepository) UpcomingEvents(tenantID string, from, to time.Time) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at <= ?", tenantID, from, to).
		Order("scheduled_at ASC").
		Find(&events).Error
	return events, err
}

// PendingChores 获取待办或进行中的家务
func (r *TenantRepository) PendingChores(tenantID string) ([]*model.Chore, error) {
	var chores []*model.Chore
	err := r.db.Where("tenant_id = ? AND status IN ?", tenantID, []string{model.StatusPending, model.StatusInProgress}).
		Find(&chores).Error
	return chores, err
}

// ChoresAssignedTo 获取分配给指定住户的待办家务
func (r *TenantRepository) ChoresAssignedTo(tenantID, residentID string) ([]*model.Chore, error) {
	var chores []*model.Chore
	err := r.db.Where("tenant_id = ? AND status IN ? AND assignee_ids @> ?",
		tenantID, []string{model.StatusPending, model.StatusInProgress}, fmt.Sprintf(`["%s"]`, residentID)).
		Find(&chores).Error
	return chores, err
}

// PendingRides 获取待处理或已排期的接送请求
func (r *TenantRepository) PendingRides(tenantID string) ([]*model.Ride, error) {
	var rides []*model.Ride
	err := r.db.Where("tenant_id = ? AND status IN ?", tenantID, []string{model.StatusPending, model.StatusScheduled}).
		Find(&rides).Error
	return rides, err
}

// PendingJoinRequests 获取待审批的入住申请
func (r *TenantRepository) PendingJoinRequests(tenantID string) ([]*model.JoinRequest, error) {
	var requests []*model.JoinRequest
	err := r.db.Where("tenant_id = ? AND status = ?", tenantID, model.StatusPending).
		Find(&requests).Error
	return requests, err
}

// CreateEvent 创建事件
func (r *TenantRepository) CreateEvent(event *model.Event) error {
	return r.db.Create(event).Error
}

// CreateChore 创建家务
func (r *TenantRepository) CreateChore(chore *model.Chore) error {
	return r.db.Create(chore).Error
}

// CreateCourse 创建课程
func (r *TenantRepository) CreateCourse(course *model.Course) error {
	return r.db.Create(course).Error
}

// CreateIncident 创建事故报告
func (r *TenantRepository) CreateIncident(incident *model.Incident) error {
	return r.db.Create(incident).Error
}
