package service

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/util"
	"fmt"
	"strings"
)

type TopicReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type TopicService struct {
	TopicRepo *repository.TopicRepository
}

func NewTopicService(topicRepo *repository.TopicRepository) *TopicService {
	return &TopicService{TopicRepo: topicRepo}
}

func (s *TopicService) ListTopics() ([]model.Topic, error) {
	return s.TopicRepo.FindAll()
}

func (s *TopicService) GetTopic(id uint) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, fmt.Errorf("load topic: %w", err)
	}
	return topic, nil
}

func (s *TopicService) CreateTopic(req TopicReq) (*model.Topic, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, util.ErrMissingFields
	}
	topic := &model.Topic{Name: strings.TrimSpace(*req.Name)}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.ImageURL != nil {
		topic.ImageURL = *req.ImageURL
	}
	if err := s.TopicRepo.Create(topic); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}

// UpdateTopic only touches the fields present in req.
func (s *TopicService) UpdateTopic(id uint, req TopicReq) (*model.Topic, error) {
	topic, err := s.GetTopic(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		topic.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.ImageURL != nil {
		topic.ImageURL = *req.ImageURL
	}
	if err := s.TopicRepo.Update(topic); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return topic, nil
}

func (s *TopicService) DeleteTopic(id uint) error {
	if _, err := s.GetTopic(id); err != nil {
		return err
	}
	if err := s.TopicRepo.Delete(id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
