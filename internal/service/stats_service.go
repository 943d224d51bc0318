package service

import (
	"english_app_backend/internal/repository"
	"fmt"
)

type PlatformStats struct {
	Users        int64 `json:"users"`
	Topics       int64 `json:"topics"`
	Lessons      int64 `json:"lessons"`
	Quizzes      int64 `json:"quizzes"`
	Vocabularies int64 `json:"vocabularies"`
}

type StatsService struct {
	UserRepo   *repository.UserRepository
	TopicRepo  *repository.TopicRepository
	LessonRepo *repository.LessonRepository
	QuizRepo   *repository.QuizRepository
	VocabRepo  *repository.VocabularyRepository
}

func NewStatsService(
	userRepo *repository.UserRepository,
	topicRepo *repository.TopicRepository,
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	vocabRepo *repository.VocabularyRepository,
) *StatsService {
	return &StatsService{
		UserRepo:   userRepo,
		TopicRepo:  topicRepo,
		LessonRepo: lessonRepo,
		QuizRepo:   quizRepo,
		VocabRepo:  vocabRepo,
	}
}

func (s *StatsService) GetStats() (*PlatformStats, error) {
	var stats PlatformStats
	counters := []struct {
		name  string
		count func() (int64, error)
		dst   *int64
	}{
		{"users", s.UserRepo.Count, &stats.Users},
		{"topics", s.TopicRepo.Count, &stats.Topics},
		{"lessons", s.LessonRepo.Count, &stats.Lessons},
		{"quizzes", s.QuizRepo.Count, &stats.Quizzes},
		{"vocabularies", s.VocabRepo.Count, &stats.Vocabularies},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}
	return &stats, nil
}
