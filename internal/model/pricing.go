package model

// CoursePricing maps (course, country) to a charge. A course may carry
// zero, one, or many rows; the country column uses ISO codes but is not
// validated against a region list.
type CoursePricing struct {
	UUIDBase
	CourseID       string  `gorm:"size:36;uniqueIndex:idx_course_country;not null" json:"course_id"`
	Country        string  `gorm:"size:8;uniqueIndex:idx_course_country;not null" json:"country"`
	Price          float64 `gorm:"not null" json:"price"`
	CurrencySymbol string  `gorm:"size:8" json:"currency_symbol"`
	// DurationMonths of 0 falls back to the course's own default.
	DurationMonths int `gorm:"default:0" json:"duration_months"`
}

func (CoursePricing) TableName() string {
	return "course_pricing"
}
