package model

import "time"

type DiscountType string

const (
	Percentage DiscountType = "percentage"
	Flat       DiscountType = "flat"
)

type DiscountScope string

const (
	ScopeCourse   DiscountScope = "course"
	ScopeGlobal   DiscountScope = "global"
	ScopeCategory DiscountScope = "category"
)

// swagger:model Discount
type Discount struct {
	UUIDBase
	Code         string        `gorm:"size:64;unique;not null" json:"code"`
	DiscountType DiscountType  `gorm:"type:enum('percentage','flat');not null" json:"discount_type"`
	Value        float64       `gorm:"not null" json:"value"`
	AppliesTo    DiscountScope `gorm:"type:enum('course','global','category');default:'global'" json:"applies_to"`
	CourseID     string        `gorm:"size:36;index" json:"course_id,omitempty"`
	Category     string        `gorm:"size:100" json:"category,omitempty"`
	ValidFrom    time.Time     `json:"valid_from"`
	ValidUntil   *time.Time    `json:"valid_until,omitempty"` // nil means no expiry
	UsageLimit   int           `gorm:"default:0" json:"usage_limit"`
	MaxUses      int           `gorm:"default:0" json:"max_uses"`
}

func (Discount) TableName() string {
	return "discounts"
}

// ValidAt reports whether the code may be redeemed at the given instant.
func (d *Discount) ValidAt(now time.Time) bool {
	if now.Before(d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	return true
}
