package service

import (
	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/database/model"

	"gorm.io/gorm/clause"
)

type SubscriberService struct{}

type SubscriberParams struct {
	Name    string
	Email   string
	ZipCode int
}

func (p SubscriberParams) apply(s *model.Subscriber) {
	s.Name = p.Name
	s.Email = p.Email
	s.ZipCode = p.ZipCode
}

func (s *SubscriberService) List() ([]model.Subscriber, error) {
	db := database.GetDB()
	var subscribers []model.Subscriber
	if err := db.Order("id ASC").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (s *SubscriberService) Get(id int) (*model.Subscriber, error) {
	db := database.GetDB()
	sub := &model.Subscriber{}
	if err := db.Preload("Courses").First(sub, id).Error; err != nil {
		return nil, notFound(err)
	}
	return sub, nil
}

func (s *SubscriberService) Create(params SubscriberParams) (*model.Subscriber, error) {
	sub := &model.Subscriber{}
	params.apply(sub)
	if err := database.GetDB().Omit(clause.Associations).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriberService) Update(id int, params SubscriberParams) (*model.Subscriber, error) {
	db := database.GetDB()
	sub := &model.Subscriber{}
	if err := db.First(sub, id).Error; err != nil {
		return nil, notFound(err)
	}
	params.apply(sub)
	if err := db.Omit(clause.Associations).Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriberService) Delete(id int) error {
	db := database.GetDB()
	sub := &model.Subscriber{}
	if err := db.First(sub, id).Error; err != nil {
		return notFound(err)
	}
	return db.Select("Courses").Delete(sub).Error
}

// FindLocal returns the other subscribers sharing sub's zip code.
func (s *SubscriberService) FindLocal(sub *model.Subscriber) ([]model.Subscriber, error) {
	db := database.GetDB()
	var local []model.Subscriber
	err := db.Where("zip_code = ? AND id <> ?", sub.ZipCode, sub.Id).
		Order("id ASC").
		Find(&local).
		Error
	if err != nil {
		return nil, err
	}
	return local, nil
}
