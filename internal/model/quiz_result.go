package model

import (
	"time"
)

// QuizResult is one graded attempt. Rows are never updated.
type QuizResult struct {
	ID             uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint               `gorm:"index;not null" json:"user_id"`
	QuizID         uint               `gorm:"index;not null" json:"quiz_id"`
	Score          int                `gorm:"not null" json:"score"`
	TotalQuestions int                `gorm:"not null" json:"total_questions"`
	Percentage     float64            `gorm:"type:decimal(5,2);not null" json:"percentage"`
	TimeSpent      *int               `json:"time_spent"`
	CompletedAt    time.Time          `gorm:"not null;index" json:"completed_at"`
	Answers        []QuizAnswerDetail `gorm:"foreignKey:QuizResultID" json:"answers,omitempty"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// QuizAnswerDetail is one transcript line. IsCorrect is decided at grading
// time and is not recomputed when the quiz definition changes.
type QuizAnswerDetail struct {
	ID               uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizResultID     uint  `gorm:"index;not null" json:"quiz_result_id"`
	QuestionID       uint  `gorm:"not null" json:"question_id"`
	SelectedOptionID *uint `json:"selected_option_id"`
	IsCorrect        bool  `gorm:"not null" json:"is_correct"`

	QuestionContent string `gorm:"->;-:migration" json:"question_content,omitempty"`
	QuestionType    string `gorm:"->;-:migration" json:"question_type,omitempty"`
	SelectedAnswer  string `gorm:"->;-:migration" json:"selected_answer,omitempty"`
}

func (QuizAnswerDetail) TableName() string {
	return "quiz_answer_details"
}
