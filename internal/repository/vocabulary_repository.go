package repository

import (
	"english_app_backend/internal/model"

	"gorm.io/gorm"
)

type VocabularyRepository struct {
	DB *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{DB: db}
}

func (r *VocabularyRepository) withLessonTitle() *gorm.DB {
	return r.DB.Model(&model.Vocabulary{}).
		Select("vocabularies.*, lessons.title AS lesson_title").
		Joins("LEFT JOIN lessons ON vocabularies.lesson_id = lessons.id")
}

func (r *VocabularyRepository) FindAll() ([]model.Vocabulary, error) {
	var words []model.Vocabulary
	err := r.withLessonTitle().Order("vocabularies.id DESC").Find(&words).Error
	return words, err
}

func (r *VocabularyRepository) FindByLessonID(lessonID uint) ([]model.Vocabulary, error) {
	var words []model.Vocabulary
	err := r.DB.Where("lesson_id = ?", lessonID).Order("id ASC").Find(&words).Error
	return words, err
}

func (r *VocabularyRepository) FindByID(id uint) (*model.Vocabulary, error) {
	var word model.Vocabulary
	err := r.withLessonTitle().Where("vocabularies.id = ?", id).First(&word).Error
	return &word, err
}

func (r *VocabularyRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Vocabulary{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *VocabularyRepository) Create(word *model.Vocabulary) error {
	return r.DB.Create(word).Error
}

// CreateBatch inserts all words in one statement; either all rows land or none.
func (r *VocabularyRepository) CreateBatch(words []model.Vocabulary) (int64, error) {
	if len(words) == 0 {
		return 0, nil
	}
	result := r.DB.Create(&words)
	return result.RowsAffected, result.Error
}

func (r *VocabularyRepository) Update(word *model.Vocabulary) error {
	return r.DB.Model(&model.Vocabulary{}).Where("id = ?", word.ID).Updates(map[string]interface{}{
		"lesson_id": word.LessonID,
		"word":      word.Word,
		"meaning":   word.Meaning,
		"phonetic":  word.Phonetic,
		"audio_url": word.AudioURL,
	}).Error
}

func (r *VocabularyRepository) Delete(id uint) (bool, error) {
	result := r.DB.Delete(&model.Vocabulary{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *VocabularyRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Vocabulary{}).Count(&count).Error
	return count, err
}
