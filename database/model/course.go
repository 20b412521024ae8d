package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is a cooking class users can enroll in. MaxStudents of zero means
// enrollment is not capped.
type Course struct {
	Id          int                         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string                      `json:"title" gorm:"uniqueIndex;not null"`
	Description string                      `json:"description" gorm:"not null"`
	Items       datatypes.JSONSlice[string] `json:"items"`
	ZipCode     int                         `json:"zipCode"`
	MaxStudents int                         `json:"maxStudents" gorm:"default:0"`
	Cost        float64                     `json:"cost" gorm:"default:0"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	if c.Items == nil {
		c.Items = datatypes.JSONSlice[string]{}
	}

	v := validator{model: "Course"}
	v.required("title", c.Title)
	v.required("description", c.Description)
	v.zipCode(c.ZipCode, false)
	v.nonNegative("maxStudents", float64(c.MaxStudents))
	v.nonNegative("cost", c.Cost)
	return v.err()
}
