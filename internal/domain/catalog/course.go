package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Course is a published course. Lessons and ratings hang off it and are removed with it.
type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
	Thumbnail   string `gorm:"column:thumbnail;size:500;not null" json:"thumbnail"`
	Slug        string `gorm:"column:slug;size:255;not null;uniqueIndex" json:"slug"`

	Teachers []*Teacher      `gorm:"many2many:course_teachers;" json:"-"`
	Lessons  []*Lesson       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Ratings  []*CourseRating `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "courses" }
