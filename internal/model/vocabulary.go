package model

// swagger:model Vocabulary
type Vocabulary struct {
	BaseModel
	LessonID uint   `gorm:"index;not null" json:"lesson_id"`
	Word     string `gorm:"size:100;not null" json:"word"`
	Meaning  string `gorm:"size:255;not null" json:"meaning"`
	Phonetic string `gorm:"size:100" json:"phonetic"`
	AudioURL string `gorm:"size:255" json:"audio_url"`

	LessonTitle string `gorm:"->;-:migration" json:"lesson_title,omitempty"`
}

func (Vocabulary) TableName() string {
	return "vocabularies"
}
