package service

import (
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"

	"gorm.io/gorm"
)

type ProfileUpdater interface {
	FindByID(id string) (*model.Profile, error)
	UpdateFields(id string, fields map[string]interface{}) error
}

type ProfileService struct {
	Profiles ProfileUpdater
}

func NewProfileService(profiles ProfileUpdater) *ProfileService {
	return &ProfileService{Profiles: profiles}
}

func (s *ProfileService) GetProfile(userID string) (*model.Profile, error) {
	profile, err := s.Profiles.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a partial update. Only the whitelisted columns
// make it through; role, email and password never do.
func (s *ProfileService) UpdateProfile(userID string, fields map[string]interface{}) (*model.Profile, error) {
	if len(fields) == 0 {
		return nil, util.ErrEmptyUpdate
	}
	if err := s.Profiles.UpdateFields(userID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}
	return s.Profiles.FindByID(userID)
}
