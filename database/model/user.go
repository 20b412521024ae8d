package model

import (
	"strings"
	"time"

	"github.com/confetti-cuisine/confetti/util/crypto"
	"github.com/confetti-cuisine/confetti/util/random"

	"gorm.io/gorm"
)

const apiTokenLength = 16

type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// User is a registered account. Password only ever holds a bcrypt hash once
// the record has been saved; raw passwords go through SetPassword.
type User struct {
	Id                  int         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                Name        `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Email               string      `json:"email" gorm:"uniqueIndex;not null"`
	Password            string      `json:"-" gorm:"not null"`
	ZipCode             int         `json:"zipCode"`
	Courses             []Course    `json:"courses,omitempty" gorm:"many2many:user_courses;"`
	SubscribedAccountId *int        `json:"subscribedAccountId,omitempty"`
	SubscribedAccount   *Subscriber `json:"subscribedAccount,omitempty" gorm:"foreignKey:SubscribedAccountId"`
	ApiToken            string      `json:"-" gorm:"index"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`

	// hashed is set once Password holds a hash: after loading or hashing.
	hashed bool
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.Name.First + " " + u.Name.Last)
}

// HasCourse reports whether the user is enrolled in the course with the given id.
// Courses must be preloaded.
func (u *User) HasCourse(courseId int) bool {
	for _, c := range u.Courses {
		if c.Id == courseId {
			return true
		}
	}
	return false
}

// SetPassword stages a raw password; it is hashed when the user is saved.
func (u *User) SetPassword(raw string) {
	u.Password = raw
	u.hashed = false
}

func (u *User) AfterFind(tx *gorm.DB) error {
	u.hashed = true
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Name.First = strings.TrimSpace(u.Name.First)
	u.Name.Last = strings.TrimSpace(u.Name.Last)
	u.Email = normalizeEmail(u.Email)

	v := validator{model: "User"}
	v.required("email", u.Email)
	v.required("password", u.Password)
	v.zipCode(u.ZipCode, true)
	if err := v.err(); err != nil {
		return err
	}

	if !u.hashed {
		hash, err := crypto.HashPasswordAsBcrypt(u.Password)
		if err != nil {
			return err
		}
		u.Password = hash
		u.hashed = true
	}
	if u.ApiToken == "" {
		u.ApiToken = random.Seq(apiTokenLength)
	}
	if u.SubscribedAccountId == nil {
		return u.linkSubscriber(tx)
	}
	return nil
}

// linkSubscriber points the user at the subscriber sharing its email, if one exists.
func (u *User) linkSubscriber(tx *gorm.DB) error {
	var sub Subscriber
	err := tx.Session(&gorm.Session{NewDB: true}).
		Where("email = ?", u.Email).
		Limit(1).
		Find(&sub).
		Error
	if err != nil {
		return err
	}
	if sub.Id != 0 {
		u.SubscribedAccountId = &sub.Id
	}
	return nil
}
