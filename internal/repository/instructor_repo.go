package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MRinuka/yeng-app/internal/model"
)

// InstructorRepository 教练数据访问接口
type InstructorRepository interface {
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	GetByUserID(ctx context.Context, userID string) (*model.Instructor, error)
	List(ctx context.Context, includeInactive bool) ([]model.Instructor, error)
}

type instructorRepo struct {
	db *gorm.DB
}

// NewInstructorRepo 创建 InstructorRepository 实例
func NewInstructorRepo(db *gorm.DB) InstructorRepository {
	return &instructorRepo{db: db}
}

func (r *instructorRepo) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", id).
		First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *instructorRepo) GetByUserID(ctx context.Context, userID string) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *instructorRepo) List(ctx context.Context, includeInactive bool) ([]model.Instructor, error) {
	var instructors []model.Instructor
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&instructors).Error
	return instructors, err
}
