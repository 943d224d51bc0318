package model

const (
	DefaultPassingScore = 70
	DefaultTimeLimit    = 600

	QuestionMultipleChoice = "multiple_choice"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID     uint       `gorm:"index;not null" json:"lesson_id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PassingScore int        `gorm:"default:70" json:"passing_score"` // percentage
	TimeLimit    int        `gorm:"default:600" json:"time_limit"`   // seconds
	Questions    []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID      uint             `gorm:"index;not null" json:"quiz_id"`
	Content     string           `gorm:"type:text;not null" json:"content"`
	Type        string           `gorm:"size:30;default:'multiple_choice'" json:"type"`
	Explanation string           `gorm:"type:text" json:"explanation"`
	Options     []QuestionOption `gorm:"foreignKey:QuestionID" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOption returns the first option flagged correct, or nil.
func (q *Question) CorrectOption() *QuestionOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// swagger:model QuestionOption
type QuestionOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
