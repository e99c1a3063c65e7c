package model

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Teacher    UserRole = "teacher"
	SuperAdmin UserRole = "super_admin"
	Admin      UserRole = "admin"
	Basic      UserRole = "user"
)

// ValidRole reports whether s is one of the roles a profile may carry.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case Student, Teacher, SuperAdmin, Admin, Basic:
		return true
	}
	return false
}

// swagger:model Profile
type Profile struct {
	UUIDBase
	Email               string          `gorm:"size:100;unique;not null" json:"email"`
	Password            string          `gorm:"size:100;not null" json:"-"`
	Role                UserRole        `gorm:"type:enum('student','teacher','super_admin','admin','user');default:'student'" json:"role"`
	FirstName           string          `gorm:"size:100" json:"firstName"`
	LastName            string          `gorm:"size:100" json:"lastName"`
	MobileNo            string          `gorm:"size:32" json:"mobileNo"`
	Country             string          `gorm:"size:8" json:"country"`
	Timezone            string          `gorm:"size:64" json:"timezone"`
	LanguagesInterested json.RawMessage `gorm:"type:json" json:"languagesInterested,omitempty"`
	LanguagesMastered   json.RawMessage `gorm:"type:json" json:"languagesMastered,omitempty"`
	LearningGoals       json.RawMessage `gorm:"type:json" json:"learningGoals,omitempty"`
	TeachingExperience  int             `gorm:"default:0" json:"teachingExperience"`
	Disabled            bool            `gorm:"default:false" json:"disabled"`
	LastLogin           time.Time       `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (Profile) TableName() string {
	return "profiles"
}
