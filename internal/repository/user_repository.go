package repository

import (
	"gorm.io/gorm"

	"github.com/hvglabs/hvg-assist/internal/model"
)

// UserRepository 用户数据访问
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 获取用户
func (r *UserRepository) GetByID(id string) (*model.AppUser, error) {
	var user model.AppUser
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ActiveTenantIDs 获取住户有在住记录的租户 ID 列表（去重）
func (r *UserRepository) ActiveTenantIDs(residentID string) ([]string, error) {
	var tenantIDs []string
	err := r.db.Model(&model.Enrollment{}).
		Distinct("tenant_id").
		Where("resident_id = ? AND status = ?", residentID, model.StatusActive).
		Pluck("tenant_id", &tenantIDs).Error
	return tenantIDs, err
}

// CreateMoodLog 记录心情
func (r *UserRepository) CreateMoodLog(entry *model.MoodLog) error {
	return r.db.Create(entry).Error
}
