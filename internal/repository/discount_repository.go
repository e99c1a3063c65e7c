package repository

import (
	"guruschool_backend/internal/model"

	"gorm.io/gorm"
)

type DiscountRepository struct {
	DB *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{DB: db}
}

func (r *DiscountRepository) Create(discount *model.Discount) error {
	return r.DB.Create(discount).Error
}

func (r *DiscountRepository) FindByCode(code string) (*model.Discount, error) {
	var discount model.Discount
	err := r.DB.Where("code = ?", code).First(&discount).Error
	return &discount, err
}

func (r *DiscountRepository) List() ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.DB.Order("created_at DESC").Find(&discounts).Error
	return discounts, err
}
