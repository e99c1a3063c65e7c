package repository

import (
	"guruschool_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) CreateBatch(modules []model.CourseModule) error {
	return r.DB.Create(&modules).Error
}

func (r *ModuleRepository) FindByID(id string) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *ModuleRepository) FindByCourse(courseID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).Order("order_no").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) DeleteByCourse(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.CourseModule{}).Error
}
