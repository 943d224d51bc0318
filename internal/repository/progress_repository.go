package repository

import (
	"english_app_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// CompletedLessonRow is a completion event joined with lesson and topic names.
type CompletedLessonRow struct {
	LessonID    uint      `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
	LessonTitle string    `json:"lesson_title"`
	TopicName   string    `json:"topic_name"`
}

// Upsert records that the user finished the lesson at the given time. A repeat
// completion only moves completed_at.
func (r *ProgressRepository) Upsert(userID, lessonID uint, at time.Time) error {
	progress := model.LearningProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: at,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_at"}),
	}).Create(&progress).Error
}

func (r *ProgressRepository) Exists(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// FindCompletionTimes returns every completion timestamp of the user, latest first.
func (r *ProgressRepository) FindCompletionTimes(userID uint) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.Model(&model.LearningProgress{}).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Pluck("completed_at", &times).Error
	return times, err
}

func (r *ProgressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByUserBetween counts completions in [start, end).
func (r *ProgressRepository) CountByUserBetween(userID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, start, end).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) FindCompletedLessons(userID uint) ([]CompletedLessonRow, error) {
	rows := []CompletedLessonRow{}
	err := r.DB.Table("learning_progress lp").
		Select("lp.lesson_id, lp.completed_at, l.title AS lesson_title, COALESCE(t.name, '') AS topic_name").
		Joins("JOIN lessons l ON lp.lesson_id = l.id").
		Joins("LEFT JOIN topics t ON l.topic_id = t.id").
		Where("lp.user_id = ?", userID).
		Order("lp.completed_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountCompletedInTopic(userID, topicID uint) (int64, error) {
	var count int64
	err := r.DB.Table("learning_progress lp").
		Joins("JOIN lessons l ON lp.lesson_id = l.id").
		Where("lp.user_id = ? AND l.topic_id = ?", userID, topicID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) Delete(userID, lessonID uint) (bool, error) {
	result := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).Delete(&model.LearningProgress{})
	return result.RowsAffected > 0, result.Error
}
