package catalog

import (
	"time"

	"gorm.io/gorm"
)

type Teacher struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"column:name;size:255;not null" json:"name"`
	Email string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Teacher) TableName() string { return "teachers" }

// CourseTeachersTable is the many-to-many join table between courses and teachers.
const CourseTeachersTable = "course_teachers"
