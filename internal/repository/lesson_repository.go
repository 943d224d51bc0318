package repository

import (
	"english_app_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) withTopicName() *gorm.DB {
	return r.DB.Model(&model.Lesson{}).
		Select("lessons.*, topics.name AS topic_name").
		Joins("LEFT JOIN topics ON lessons.topic_id = topics.id")
}

// FindAll returns every lesson with its topic name, newest first.
func (r *LessonRepository) FindAll() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.withTopicName().Order("lessons.created_at DESC").Order("lessons.id DESC").Find(&lessons).Error
	return lessons, err
}

// FindByTopicID orders lessons easiest first. A non-empty levels slice restricts
// the result to those lesson levels.
func (r *LessonRepository) FindByTopicID(topicID uint, levels []model.UserLevel) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := r.DB.Where("topic_id = ?", topicID)
	if len(levels) > 0 {
		query = query.Where("level IN ?", levels)
	}
	err := query.Order("difficulty_score ASC").Order("created_at ASC").Order("id ASC").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.withTopicName().Where("lessons.id = ?", id).First(&lesson).Error
	return &lesson, err
}

func (r *LessonRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Model(&model.Lesson{}).Where("id = ?", lesson.ID).Updates(map[string]interface{}{
		"topic_id":         lesson.TopicID,
		"title":            lesson.Title,
		"content":          lesson.Content,
		"video_url":        lesson.VideoURL,
		"level":            lesson.Level,
		"difficulty_score": lesson.DifficultyScore,
	}).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) CountByTopicID(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

func (r *LessonRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Count(&count).Error
	return count, err
}
