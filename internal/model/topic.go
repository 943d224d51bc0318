package model

// swagger:model Topic
type Topic struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"image_url"`
}

func (Topic) TableName() string {
	return "topics"
}
