package entity

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/confetti-cuisine/confetti/database/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("zipcode", isZipCode); err != nil {
		panic(err)
	}
	return v
}

// isZipCode accepts exactly five ASCII digits within the model's zip range.
func isZipCode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= model.MinZipCode && n <= model.MaxZipCode
}

// Validate checks form against its validate tags, skipping the fields named in
// except, and returns the msg tag of every failing field in declaration order.
func Validate(form any, except ...string) []string {
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(form, except...)
	} else {
		err = validate.Struct(form)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("msg"); tag != "" {
				msg = tag
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
