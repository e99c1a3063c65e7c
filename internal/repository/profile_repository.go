package repository

import (
	"guruschool_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	return r.DB.Create(profile).Error
}

func (r *ProfileRepository) FindByID(id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("id = ?", id).First(&profile).Error
	return &profile, err
}

func (r *ProfileRepository) FindByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("email = ?", email).First(&profile).Error
	return &profile, err
}

// UpdateFields applies a partial update so untouched columns keep their
// values.
func (r *ProfileRepository) UpdateFields(id string, fields map[string]interface{}) error {
	res := r.DB.Model(&model.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdateRole(id string, role model.UserRole) error {
	res := r.DB.Model(&model.Profile{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdateLastLogin(id string) error {
	return r.DB.Model(&model.Profile{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}

func (r *ProfileRepository) List(role string) ([]model.Profile, error) {
	var profiles []model.Profile
	q := r.DB.Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&profiles).Error
	return profiles, err
}
