package model

import "encoding/json"

// swagger:model Course
type Course struct {
	UUIDBase
	Title          string  `gorm:"size:255;not null" json:"title"`
	Description    string  `gorm:"type:text" json:"description"`
	ThumbnailURL   string  `gorm:"size:512" json:"thumbnailUrl"`
	CreatedBy      string  `gorm:"size:36;index;not null" json:"createdBy"`
	Category       string  `gorm:"size:100;index" json:"category"`
	Price          float64 `gorm:"default:0" json:"price"`
	CurrencySymbol string  `gorm:"size:8;default:'INR'" json:"currencySymbol"`
	DurationMonths int     `gorm:"default:6" json:"durationMonths"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is an ordered section inside a course. "module" alone would
// collide with the Go package concept, hence the prefix.
type CourseModule struct {
	UUIDBase
	CourseID    string   `gorm:"size:36;index;not null" json:"course_id"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	OrderNo     int      `gorm:"default:1" json:"order_no"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "modules"
}

type Lesson struct {
	UUIDBase
	ModuleID    string          `gorm:"size:36;index;not null" json:"module_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	VideoURL    string          `gorm:"size:512" json:"videoUrl"`
	Duration    int             `gorm:"default:0" json:"duration"` // seconds
	Resources   json.RawMessage `gorm:"type:json" json:"resources,omitempty"`
	OrderNo     int             `gorm:"default:1" json:"order_no"`
}

func (Lesson) TableName() string {
	return "lessons"
}
