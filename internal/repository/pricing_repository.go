package repository

import (
	"guruschool_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingRepository struct {
	DB *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{DB: db}
}

// Upsert keeps at most one row per (course, country).
func (r *PricingRepository) Upsert(pricing *model.CoursePricing) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "country"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "currency_symbol", "duration_months"}),
	}).Create(pricing).Error
}

func (r *PricingRepository) FindByCourseAndCountry(courseID, country string) (*model.CoursePricing, error) {
	var pricing model.CoursePricing
	err := r.DB.Where("course_id = ? AND country = ?", courseID, country).First(&pricing).Error
	return &pricing, err
}

// FindFirstByCourse returns any pricing row for the course, used as the
// fallback when the requested country has none.
func (r *PricingRepository) FindFirstByCourse(courseID string) (*model.CoursePricing, error) {
	var pricing model.CoursePricing
	err := r.DB.Where("course_id = ?", courseID).Order("created_at").First(&pricing).Error
	return &pricing, err
}

func (r *PricingRepository) FindByCourse(courseID string) ([]model.CoursePricing, error) {
	var rows []model.CoursePricing
	err := r.DB.Where("course_id = ?", courseID).Order("country").Find(&rows).Error
	return rows, err
}
