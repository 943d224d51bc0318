package model

import "time"

// LearningProgress is one completion event. A (user, lesson) pair has at most
// one row; completing the lesson again moves CompletedAt forward.
type LearningProgress struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_progress_user_lesson;index:idx_progress_user_completed,priority:1" json:"user_id"`
	LessonID    uint      `gorm:"not null;uniqueIndex:idx_progress_user_lesson" json:"lesson_id"`
	CompletedAt time.Time `gorm:"not null;index:idx_progress_user_completed,priority:2" json:"completed_at"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}
