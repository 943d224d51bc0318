package service

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/util"
	"fmt"
	"strings"
)

type LessonReq struct {
	TopicID         *uint            `json:"topic_id"`
	Title           *string          `json:"title"`
	Content         *string          `json:"content"`
	VideoURL        *string          `json:"video_url"`
	Level           *model.UserLevel `json:"level"`
	DifficultyScore *int             `json:"difficulty_score"`
}

type LessonService struct {
	LessonRepo *repository.LessonRepository
	TopicRepo  *repository.TopicRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, topicRepo *repository.TopicRepository) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		TopicRepo:  topicRepo,
	}
}

func (s *LessonService) requireTopic(topicID uint) error {
	if _, err := s.TopicRepo.FindByID(topicID); err != nil {
		if isNotFound(err) {
			return util.ErrTopicNotFound
		}
		return fmt.Errorf("load topic: %w", err)
	}
	return nil
}

func (s *LessonService) ListLessons() ([]model.Lesson, error) {
	return s.LessonRepo.FindAll()
}

// ListByTopic returns the topic's lessons, easiest first. A valid level limits
// the list to lessons visible at that level.
func (s *LessonService) ListByTopic(topicID uint, level model.UserLevel) ([]model.Lesson, error) {
	if err := s.requireTopic(topicID); err != nil {
		return nil, err
	}
	var levels []model.UserLevel
	if level.Valid() {
		levels = level.VisibleLevels()
	}
	return s.LessonRepo.FindByTopicID(topicID, levels)
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrLessonNotFound
		}
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	return lesson, nil
}

func (s *LessonService) CreateLesson(req LessonReq) (*model.Lesson, error) {
	if req.TopicID == nil || *req.TopicID == 0 || req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, util.ErrMissingFields
	}
	if err := s.requireTopic(*req.TopicID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		TopicID:         *req.TopicID,
		Title:           strings.TrimSpace(*req.Title),
		Level:           model.Beginner,
		DifficultyScore: 1,
	}
	applyLessonReq(lesson, req)
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return lesson, nil
}

func (s *LessonService) UpdateLesson(id uint, req LessonReq) (*model.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}
	if req.TopicID != nil && *req.TopicID != 0 {
		if err := s.requireTopic(*req.TopicID); err != nil {
			return nil, err
		}
		lesson.TopicID = *req.TopicID
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		lesson.Title = strings.TrimSpace(*req.Title)
	}
	applyLessonReq(lesson, req)
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	return lesson, nil
}

func applyLessonReq(lesson *model.Lesson, req LessonReq) {
	if req.Content != nil {
		lesson.Content = *req.Content
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.Level != nil && req.Level.Valid() {
		lesson.Level = *req.Level
	}
	if req.DifficultyScore != nil {
		lesson.DifficultyScore = *req.DifficultyScore
	}
}

func (s *LessonService) DeleteLesson(id uint) error {
	ok, err := s.LessonRepo.Exists(id)
	if err != nil {
		return fmt.Errorf("check lesson: %w", err)
	}
	if !ok {
		return util.ErrLessonNotFound
	}
	if err := s.LessonRepo.Delete(id); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}
