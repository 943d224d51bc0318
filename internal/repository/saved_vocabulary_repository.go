package repository

import (
	"english_app_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SavedVocabularyRepository struct {
	DB *gorm.DB
}

func NewSavedVocabularyRepository(db *gorm.DB) *SavedVocabularyRepository {
	return &SavedVocabularyRepository{DB: db}
}

// SavedVocabularyRow is a saved word joined with its vocabulary entry.
type SavedVocabularyRow struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	VocabularyID uint      `json:"vocabulary_id"`
	CreatedAt    time.Time `json:"created_at"`
	Word         string    `json:"word"`
	Meaning      string    `json:"meaning"`
	Phonetic     string    `json:"phonetic"`
	AudioURL     string    `json:"audio_url"`
	LessonID     uint      `json:"lesson_id"`
	LessonTitle  string    `json:"lesson_title"`
}

func (r *SavedVocabularyRepository) FindByUserID(userID uint) ([]SavedVocabularyRow, error) {
	rows := []SavedVocabularyRow{}
	err := r.DB.Table("saved_vocabularies sv").
		Select("sv.id, sv.user_id, sv.vocabulary_id, sv.created_at, " +
			"v.word, v.meaning, COALESCE(v.phonetic, '') AS phonetic, COALESCE(v.audio_url, '') AS audio_url, v.lesson_id, " +
			"COALESCE(l.title, '') AS lesson_title").
		Joins("JOIN vocabularies v ON sv.vocabulary_id = v.id").
		Joins("LEFT JOIN lessons l ON v.lesson_id = l.id").
		Where("sv.user_id = ?", userID).
		Order("sv.created_at DESC").
		Order("sv.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *SavedVocabularyRepository) FindVocabularyIDs(userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.Model(&model.SavedVocabulary{}).Where("user_id = ?", userID).Pluck("vocabulary_id", &ids).Error
	return ids, err
}

func (r *SavedVocabularyRepository) Exists(userID, vocabularyID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.SavedVocabulary{}).
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).
		Count(&count).Error
	return count > 0, err
}

func (r *SavedVocabularyRepository) Create(saved *model.SavedVocabulary) error {
	return r.DB.Create(saved).Error
}

func (r *SavedVocabularyRepository) Delete(userID, vocabularyID uint) (bool, error) {
	result := r.DB.Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).Delete(&model.SavedVocabulary{})
	return result.RowsAffected > 0, result.Error
}
