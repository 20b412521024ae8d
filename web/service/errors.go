package service

import (
	"errors"

	"github.com/confetti-cuisine/confetti/database"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCourseFull         = errors.New("course is full")
)

func notFound(err error) error {
	if database.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
