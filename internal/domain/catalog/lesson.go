package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Lesson is a single class inside a course.
type Lesson struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CourseID    uint   `gorm:"column:course_id;not null;index" json:"course_id"`
	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
	Slug        string `gorm:"column:slug;size:255;not null;index" json:"slug"`
	VideoURL    string `gorm:"column:video_url;size:500;not null" json:"video_url"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string { return "lessons" }
