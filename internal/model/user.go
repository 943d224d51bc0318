package model

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type UserLevel string

const (
	Beginner     UserLevel = "beginner"
	Intermediate UserLevel = "intermediate"
	Advanced     UserLevel = "advanced"
)

// VisibleLevels lists the lesson levels a learner at level l may see.
func (l UserLevel) VisibleLevels() []UserLevel {
	switch l {
	case Intermediate:
		return []UserLevel{Beginner, Intermediate}
	case Advanced:
		return []UserLevel{Beginner, Intermediate, Advanced}
	default:
		return []UserLevel{Beginner}
	}
}

func (l UserLevel) Valid() bool {
	return l == Beginner || l == Intermediate || l == Advanced
}

// swagger:model User
type User struct {
	BaseModel
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	Role     UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Level    UserLevel `gorm:"size:20;default:'beginner'" json:"level"`
}

func (User) TableName() string {
	return "users"
}
