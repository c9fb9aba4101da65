package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MRinuka/yeng-app/internal/model"
)

// AvailabilityRepository 教练可约时间窗数据访问接口（纯只读）
type AvailabilityRepository interface {
	// ListByInstructorAndDay 查询教练在某星期的可约时间窗（dayOfWeek: 1=周一 … 7=周日）
	ListByInstructorAndDay(ctx context.Context, instructorID string, dayOfWeek int) ([]model.InstructorAvailability, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]model.InstructorAvailability, error)
}

type availabilityRepo struct {
	db *gorm.DB
}

// NewAvailabilityRepo 创建 AvailabilityRepository 实例
func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) ListByInstructorAndDay(ctx context.Context, instructorID string, dayOfWeek int) ([]model.InstructorAvailability, error) {
	var windows []model.InstructorAvailability
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND day_of_week = ? AND is_active = ?", instructorID, dayOfWeek, true).
		Order("start_time ASC").
		Find(&windows).Error
	return windows, err
}

func (r *availabilityRepo) ListByInstructor(ctx context.Context, instructorID string) ([]model.InstructorAvailability, error) {
	var windows []model.InstructorAvailability
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND is_active = ?", instructorID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	return windows, err
}
