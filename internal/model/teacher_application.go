package model

import "encoding/json"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
)

type TeacherApplication struct {
	UUIDBase
	Email              string            `gorm:"size:100;unique;not null" json:"email"`
	FirstName          string            `gorm:"size:100" json:"first_name"`
	LastName           string            `gorm:"size:100" json:"last_name"`
	MobileNo           string            `gorm:"size:32" json:"mobile_no"`
	LanguagesMastered  json.RawMessage   `gorm:"type:json" json:"languages_mastered,omitempty"`
	TeachingExperience int               `gorm:"default:0" json:"teaching_experience"`
	Timezone           string            `gorm:"size:64" json:"timezone"`
	Status             ApplicationStatus `gorm:"type:enum('pending','approved');default:'pending'" json:"status"`
}

func (TeacherApplication) TableName() string {
	return "teacher_applications"
}

// Invite gates teacher self-registration. A used invite cannot be
// redeemed again.
type Invite struct {
	UUIDBase
	Email string   `gorm:"size:100;index;not null" json:"email"`
	Role  UserRole `gorm:"type:enum('student','teacher','super_admin','admin','user');default:'teacher'" json:"role"`
	Used  bool     `gorm:"default:false" json:"used"`
}

func (Invite) TableName() string {
	return "invites"
}
