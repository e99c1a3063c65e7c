package repository

import (
	"guruschool_backend/internal/model"

	"gorm.io/gorm"
)

type InviteRepository struct {
	DB *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{DB: db}
}

func (r *InviteRepository) Create(invite *model.Invite) error {
	return r.DB.Create(invite).Error
}

// FindUnused returns an unredeemed invite for the email/role pair.
func (r *InviteRepository) FindUnused(email string, role model.UserRole) (*model.Invite, error) {
	var invite model.Invite
	err := r.DB.Where("email = ? AND role = ? AND used = ?", email, role, false).First(&invite).Error
	return &invite, err
}

func (r *InviteRepository) MarkUsed(id string) error {
	return r.DB.Model(&model.Invite{}).Where("id = ?", id).Update("used", true).Error
}
