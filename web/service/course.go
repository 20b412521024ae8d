package service

import (
	"strings"

	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/cache"

	"gorm.io/datatypes"
)

type CourseService struct{}

type CourseParams struct {
	Title       string
	Description string
	Items       []string
	ZipCode     int
	MaxStudents int
	Cost        float64
}

func (p CourseParams) apply(c *model.Course) {
	c.Title = p.Title
	c.Description = p.Description
	c.Items = datatypes.JSONSlice[string](p.Items)
	c.ZipCode = p.ZipCode
	c.MaxStudents = p.MaxStudents
	c.Cost = p.Cost
}

// CourseView is a course as seen by one user.
type CourseView struct {
	model.Course
	Joined bool `json:"joined"`
}

// List returns every course, served from redis when it is configured.
func (s *CourseService) List() ([]model.Course, error) {
	var courses []model.Course
	if cache.Enabled() {
		if err := cache.GetJSON(cache.KeyCourses, &courses); err == nil {
			return courses, nil
		}
	}

	db := database.GetDB()
	if err := db.Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}

	if cache.Enabled() {
		if err := cache.SetJSON(cache.KeyCourses, courses, cache.TTLCourses); err != nil {
			logger.Warning("cache courses:", err)
		}
	}
	return courses, nil
}

func (s *CourseService) invalidate() {
	if !cache.Enabled() {
		return
	}
	if err := cache.Delete(cache.KeyCourses); err != nil {
		logger.Warning("invalidate courses cache:", err)
	}
}

func (s *CourseService) Get(id int) (*model.Course, error) {
	db := database.GetDB()
	course := &model.Course{}
	if err := db.First(course, id).Error; err != nil {
		return nil, notFound(err)
	}
	return course, nil
}

func (s *CourseService) Create(params CourseParams) (*model.Course, error) {
	course := &model.Course{}
	params.apply(course)
	if err := database.GetDB().Create(course).Error; err != nil {
		return nil, err
	}
	s.invalidate()
	return course, nil
}

func (s *CourseService) Update(id int, params CourseParams) (*model.Course, error) {
	db := database.GetDB()
	course := &model.Course{}
	if err := db.First(course, id).Error; err != nil {
		return nil, notFound(err)
	}
	params.apply(course)
	if err := db.Save(course).Error; err != nil {
		return nil, err
	}
	s.invalidate()
	return course, nil
}

// Delete removes the course together with every enrollment pointing at it.
func (s *CourseService) Delete(id int) error {
	db := database.GetDB()
	course := &model.Course{}
	if err := db.First(course, id).Error; err != nil {
		return notFound(err)
	}
	for _, table := range []string{"user_courses", "subscriber_courses"} {
		if err := db.Exec("DELETE FROM "+table+" WHERE course_id = ?", id).Error; err != nil {
			return err
		}
	}
	if err := db.Delete(course).Error; err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// MarkJoined flags the courses user is enrolled in. A nil user joins nothing.
func (s *CourseService) MarkJoined(courses []model.Course, user *model.User) []CourseView {
	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, CourseView{
			Course: c,
			Joined: user != nil && user.HasCourse(c.Id),
		})
	}
	return views
}

// ParseItems splits a comma separated list, dropping blank entries.
func (s *CourseService) ParseItems(raw string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
