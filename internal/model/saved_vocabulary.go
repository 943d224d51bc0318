package model

import "time"

// SavedVocabulary is a word a learner bookmarked for review.
type SavedVocabulary struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_saved_user_vocab" json:"user_id"`
	VocabularyID uint      `gorm:"not null;uniqueIndex:idx_saved_user_vocab" json:"vocabulary_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SavedVocabulary) TableName() string {
	return "saved_vocabularies"
}
