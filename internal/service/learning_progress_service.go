package service

import (
	"context"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/util"
	"english_app_backend/pkg/events"
	"english_app_backend/pkg/logger"
	"english_app_backend/pkg/monitoring"
	"english_app_backend/pkg/tracing"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProgressStats is the streak view returned after every completion.
type ProgressStats struct {
	Streak         int   `json:"streak"`
	TodayCompleted int64 `json:"today_completed"`
	TotalCompleted int64 `json:"total_completed"`
}

type UserProgress struct {
	ProgressStats
	CompletedLessons []repository.CompletedLessonRow `json:"completed_lessons"`
}

type TopicProgress struct {
	CompletedLessons int64 `json:"completed_lessons"`
	TotalLessons     int64 `json:"total_lessons"`
}

type LearningProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	UserRepo     *repository.UserRepository
	TopicRepo    *repository.TopicRepository
	Events       events.Publisher

	// Now is the clock used for "today"; its location decides calendar days.
	Now func() time.Time
}

func NewLearningProgressService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	topicRepo *repository.TopicRepository,
	publisher events.Publisher,
) *LearningProgressService {
	return &LearningProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		UserRepo:     userRepo,
		TopicRepo:    topicRepo,
		Events:       publisher,
		Now:          time.Now,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalculateStreak counts consecutive calendar days with activity, ending at the
// most recent active day. The run only counts while that day is today or
// yesterday; otherwise the streak is 0. Several timestamps on one day count once.
func CalculateStreak(activity []time.Time, now time.Time) int {
	if len(activity) == 0 {
		return 0
	}

	loc := now.Location()
	seen := make(map[time.Time]struct{}, len(activity))
	days := make([]time.Time, 0, len(activity))
	for _, t := range activity {
		day := startOfDay(t.In(loc))
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	yesterday := startOfDay(now).AddDate(0, 0, -1)
	if days[0].Before(yesterday) {
		return 0
	}

	streak := 0
	expected := days[0]
	for _, day := range days {
		if !day.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func (s *LearningProgressService) stats(userID uint) (*ProgressStats, error) {
	now := s.Now()

	times, err := s.ProgressRepo.FindCompletionTimes(userID)
	if err != nil {
		return nil, fmt.Errorf("load completion times: %w", err)
	}

	start := startOfDay(now)
	today, err := s.ProgressRepo.CountByUserBetween(userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("count today's completions: %w", err)
	}

	total, err := s.ProgressRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}

	return &ProgressStats{
		Streak:         CalculateStreak(times, now),
		TodayCompleted: today,
		TotalCompleted: total,
	}, nil
}

func (s *LearningProgressService) requireUser(userID uint) error {
	ok, err := s.UserRepo.Exists(userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return util.ErrUserNotFound
	}
	return nil
}

// CompleteLesson records the completion and returns the refreshed streak view.
func (s *LearningProgressService) CompleteLesson(ctx context.Context, userID, lessonID uint) (stats *ProgressStats, err error) {
	ctx, span := tracing.Start(ctx, "progress.complete_lesson",
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("lesson.id", int64(lessonID)),
	)
	defer func() { tracing.End(span, err) }()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	ok, err := s.LessonRepo.Exists(lessonID)
	if err != nil {
		return nil, fmt.Errorf("check lesson: %w", err)
	}
	if !ok {
		return nil, util.ErrLessonNotFound
	}

	completedAt := s.Now()
	if err := s.ProgressRepo.Upsert(userID, lessonID, completedAt); err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	monitoring.LessonCompletions.Inc()

	stats, err = s.stats(userID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("progress.streak", stats.Streak))

	err = s.Events.Publish(ctx, events.Event{
		Type:       events.LessonCompleted,
		UserID:     userID,
		OccurredAt: completedAt,
		Payload: map[string]interface{}{
			"lesson_id": lessonID,
			"streak":    stats.Streak,
		},
	})
	if err != nil {
		logger.Log.Warn("Failed to publish lesson completion", zap.Uint("user_id", userID), zap.Error(err))
	}

	return stats, nil
}

// GetUserProgress returns zeros and an empty list for a user without activity.
func (s *LearningProgressService) GetUserProgress(userID uint) (*UserProgress, error) {
	stats, err := s.stats(userID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.ProgressRepo.FindCompletedLessons(userID)
	if err != nil {
		return nil, fmt.Errorf("load completed lessons: %w", err)
	}
	return &UserProgress{ProgressStats: *stats, CompletedLessons: lessons}, nil
}

func (s *LearningProgressService) IsCompleted(userID, lessonID uint) (bool, error) {
	return s.ProgressRepo.Exists(userID, lessonID)
}

func (s *LearningProgressService) RemoveCompletion(userID, lessonID uint) error {
	removed, err := s.ProgressRepo.Delete(userID, lessonID)
	if err != nil {
		return fmt.Errorf("remove completion: %w", err)
	}
	if !removed {
		return util.ErrProgressNotFound
	}
	return nil
}

func (s *LearningProgressService) GetTopicProgress(userID, topicID uint) (*TopicProgress, error) {
	if _, err := s.TopicRepo.FindByID(topicID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrTopicNotFound
		}
		return nil, fmt.Errorf("load topic: %w", err)
	}
	completed, err := s.ProgressRepo.CountCompletedInTopic(userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("count completed lessons: %w", err)
	}
	total, err := s.LessonRepo.CountByTopicID(topicID)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}
	return &TopicProgress{CompletedLessons: completed, TotalLessons: total}, nil
}
