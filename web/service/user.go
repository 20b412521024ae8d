package service

import (
	"strings"

	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/util/crypto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct{}

// UserParams carries the editable fields of a user. An empty Password leaves
// the stored hash untouched on update.
type UserParams struct {
	First    string
	Last     string
	Email    string
	Password string
	ZipCode  int
}

func (p UserParams) apply(u *model.User) {
	u.Name.First = p.First
	u.Name.Last = p.Last
	u.Email = p.Email
	u.ZipCode = p.ZipCode
	if p.Password != "" {
		u.SetPassword(p.Password)
	}
}

func (s *UserService) List() ([]model.User, error) {
	db := database.GetDB()
	var users []model.User
	err := db.Model(model.User{}).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Get loads the user with its courses and linked subscriber.
func (s *UserService) Get(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Preload("Courses").
		Preload("SubscribedAccount").
		First(user, id).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// Create stores a new user with the raw password, hashed on save.
func (s *UserService) Create(user *model.User, password string) error {
	user.SetPassword(password)
	return database.GetDB().Omit(clause.Associations).Create(user).Error
}

func (s *UserService) Update(id int, params UserParams) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	if err := db.First(user, id).Error; err != nil {
		return nil, notFound(err)
	}
	params.apply(user)
	if err := db.Omit(clause.Associations).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id int) error {
	db := database.GetDB()
	user := &model.User{}
	if err := db.First(user, id).Error; err != nil {
		return notFound(err)
	}
	return db.Select("Courses").Delete(user).Error
}

// Authenticate returns the user owning email when password matches its hash.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) FindByApiToken(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Where("api_token = ?", token).First(user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// JoinCourse enrolls the user in the course. Joining twice is a no-op.
func (s *UserService) JoinCourse(userId, courseId int) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		course := &model.Course{}
		if err := tx.First(course, courseId).Error; err != nil {
			return notFound(err)
		}
		user := &model.User{}
		if err := tx.First(user, userId).Error; err != nil {
			return notFound(err)
		}

		var joined int64
		err := tx.Table("user_courses").
			Where("user_id = ? AND course_id = ?", userId, courseId).
			Count(&joined).
			Error
		if err != nil {
			return err
		}
		if joined > 0 {
			return nil
		}

		if course.MaxStudents > 0 {
			var enrolled int64
			err = tx.Table("user_courses").Where("course_id = ?", courseId).Count(&enrolled).Error
			if err != nil {
				return err
			}
			if enrolled >= int64(course.MaxStudents) {
				return ErrCourseFull
			}
		}

		return tx.Model(user).Omit("Courses.*").Association("Courses").Append(course)
	})
}

// SetPassword replaces the password of the user registered under email.
func (s *UserService) SetPassword(email, password string) error {
	if password == "" {
		return ErrInvalidCredentials
	}
	db := database.GetDB()
	user := &model.User{}
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(user).Error
	if err != nil {
		return notFound(err)
	}
	user.SetPassword(password)
	return db.Omit(clause.Associations).Save(user).Error
}

// LinkSubscribers attaches every user without a subscriber to the subscriber
// registered under the same email and returns how many were linked.
func (s *UserService) LinkSubscribers() (int, error) {
	db := database.GetDB()
	var users []model.User
	if err := db.Where("subscribed_account_id IS NULL").Find(&users).Error; err != nil {
		return 0, err
	}

	linked := 0
	for i := range users {
		var sub model.Subscriber
		err := db.Where("email = ?", users[i].Email).Limit(1).Find(&sub).Error
		if err != nil {
			return linked, err
		}
		if sub.Id == 0 {
			continue
		}
		err = db.Model(&users[i]).UpdateColumn("subscribed_account_id", sub.Id).Error
		if err != nil {
			return linked, err
		}
		linked++
	}
	return linked, nil
}
