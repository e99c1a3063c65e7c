package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "active"
	EnrollmentExpired EnrollmentStatus = "expired"
)

// Enrollment is a student's paid, time-bounded right to access a course.
// The composite unique index is the authoritative guard against duplicate
// enrollments; the pre-insert existence check only gives a friendlier
// error on the common path.
type Enrollment struct {
	UUIDBase
	StudentID       string           `gorm:"size:36;uniqueIndex:idx_student_course;not null" json:"student_id"`
	CourseID        string           `gorm:"size:36;uniqueIndex:idx_student_course;not null" json:"course_id"`
	Amount          float64          `gorm:"not null" json:"amount"`
	CurrencySymbol  string           `gorm:"size:8" json:"currency_symbol"`
	DiscountApplied float64          `gorm:"default:0" json:"discount_applied"`
	PaymentStatus   string           `gorm:"size:16;default:'paid'" json:"payment_status"`
	Status          EnrollmentStatus `gorm:"type:enum('active','expired');default:'active'" json:"status"`
	EnrolledAt      time.Time        `json:"enrolled_at"`
	ExpiresAt       time.Time        `json:"expires_at"`

	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Student *Profile `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
