package repository

import (
	"guruschool_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	return &course, err
}

func (r *CourseRepository) UpdateFields(id string, fields map[string]interface{}) error {
	res := r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Course{}).Error
}

// List filters the catalog. search matches the title case-insensitively;
// MySQL LIKE is case-insensitive on the default collation, the LOWER pair
// keeps it so on case-sensitive ones.
func (r *CourseRepository) List(category, teacherID, search string) ([]model.Course, error) {
	var courses []model.Course
	q := r.DB.Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if teacherID != "" {
		q = q.Where("created_by = ?", teacherID)
	}
	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	err := q.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByTeacher(teacherID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("created_by = ?", teacherID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}
