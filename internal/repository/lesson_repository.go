package repository

import (
	"guruschool_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) CreateBatch(lessons []model.Lesson) error {
	return r.DB.Create(&lessons).Error
}

func (r *LessonRepository) FindByModule(moduleID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("order_no").Find(&lessons).Error
	return lessons, err
}
