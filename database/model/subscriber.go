package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Subscriber is a contact-form sign-up for the newsletter.
type Subscriber struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	ZipCode   int       `json:"zipCode"`
	Courses   []Course  `json:"courses,omitempty" gorm:"many2many:subscriber_courses;"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Info returns a one-line description of the subscriber.
func (s *Subscriber) Info() string {
	return fmt.Sprintf("Name: %s Email: %s Zip Code: %d", s.Name, s.Email, s.ZipCode)
}

func (s *Subscriber) BeforeSave(tx *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = normalizeEmail(s.Email)

	v := validator{model: "Subscriber"}
	v.required("name", s.Name)
	v.required("email", s.Email)
	v.zipCode(s.ZipCode, false)
	return v.err()
}
