package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	TopicID         uint      `gorm:"index;not null" json:"topic_id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Content         string    `gorm:"type:text" json:"content"`
	VideoURL        string    `gorm:"size:255" json:"video_url"`
	Level           UserLevel `gorm:"size:20;default:'beginner';index" json:"level"`
	DifficultyScore int       `gorm:"default:1" json:"difficulty_score"`

	// filled by joined reads only
	TopicName string `gorm:"->;-:migration" json:"topic_name,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
