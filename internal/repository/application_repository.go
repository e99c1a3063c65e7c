package repository

import (
	"guruschool_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(app *model.TeacherApplication) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) FindByEmail(email string) (*model.TeacherApplication, error) {
	var app model.TeacherApplication
	err := r.DB.Where("email = ?", email).First(&app).Error
	return &app, err
}

func (r *ApplicationRepository) ListByStatus(status model.ApplicationStatus) ([]model.TeacherApplication, error) {
	var apps []model.TeacherApplication
	err := r.DB.Where("status = ?", status).Order("created_at").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) UpdateStatus(email string, status model.ApplicationStatus) error {
	return r.DB.Model(&model.TeacherApplication{}).Where("email = ?", email).Update("status", status).Error
}
