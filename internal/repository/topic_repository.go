package repository

import (
	"english_app_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) FindAll() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("id ASC").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *TopicRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Topic{}, id).Error
}

func (r *TopicRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Count(&count).Error
	return count, err
}
