package entity

import (
	"strconv"
	"strings"

	"github.com/confetti-cuisine/confetti/web/service"
)

// UserForm is the sign-up and profile form. Field order decides the order of
// the validation messages.
type UserForm struct {
	First    string `form:"first"`
	Last     string `form:"last"`
	Email    string `form:"email" validate:"required,email" msg:"Email is invalid"`
	ZipCode  string `form:"zipCode" validate:"zipcode" msg:"Zip code is invalid"`
	Password string `form:"password" validate:"required" msg:"Password cannot be empty"`
}

func (f *UserForm) Normalize() {
	f.First = strings.TrimSpace(f.First)
	f.Last = strings.TrimSpace(f.Last)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.ZipCode = strings.TrimSpace(f.ZipCode)
}

func (f *UserForm) Params() service.UserParams {
	return service.UserParams{
		First:    f.First,
		Last:     f.Last,
		Email:    f.Email,
		Password: f.Password,
		ZipCode:  parseZip(f.ZipCode),
	}
}

type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// SubscriberForm only checks formats; required fields are enforced by the model.
type SubscriberForm struct {
	Name    string `form:"name"`
	Email   string `form:"email" validate:"omitempty,email" msg:"Email is invalid"`
	ZipCode string `form:"zipCode" validate:"omitempty,zipcode" msg:"Zip code is invalid"`
}

func (f *SubscriberForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.ZipCode = strings.TrimSpace(f.ZipCode)
}

func (f *SubscriberForm) Params() service.SubscriberParams {
	return service.SubscriberParams{
		Name:    f.Name,
		Email:   f.Email,
		ZipCode: parseZip(f.ZipCode),
	}
}

// CourseForm takes its items as one comma separated field.
type CourseForm struct {
	Title       string  `form:"title" validate:"required" msg:"Title cannot be empty"`
	Description string  `form:"description" validate:"required" msg:"Description cannot be empty"`
	Items       string  `form:"items"`
	ZipCode     string  `form:"zipCode" validate:"omitempty,zipcode" msg:"Zip code is invalid"`
	MaxStudents int     `form:"maxStudents" validate:"gte=0" msg:"Max students cannot be negative"`
	Cost        float64 `form:"cost" validate:"gte=0" msg:"Cost cannot be negative"`
}

func (f *CourseForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.ZipCode = strings.TrimSpace(f.ZipCode)
}

func (f *CourseForm) Params(items []string) service.CourseParams {
	return service.CourseParams{
		Title:       f.Title,
		Description: f.Description,
		Items:       items,
		ZipCode:     parseZip(f.ZipCode),
		MaxStudents: f.MaxStudents,
		Cost:        f.Cost,
	}
}

func parseZip(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
