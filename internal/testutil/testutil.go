// Package testutil opens throwaway SQLite stores and seeds the rows most
// tests start from.
package testutil

import (
	"english_app_backend/internal/model"
	"english_app_backend/pkg/database"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int64

// NewDB opens a private in-memory database with every table migrated. It is
// closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbSeq, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Clock returns a fixed UTC instant; Day(-1) is the same time yesterday.
type Clock time.Time

func (c Clock) Now() time.Time { return time.Time(c) }

func (c Clock) Day(offset int) time.Time { return time.Time(c).AddDate(0, 0, offset) }

func CreateUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{Name: "Learner", Email: email, Password: "x", Role: role, Level: model.Beginner}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateTopic(t *testing.T, db *gorm.DB, name string) *model.Topic {
	t.Helper()
	topic := &model.Topic{Name: name}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func CreateLesson(t *testing.T, db *gorm.DB, topicID uint, title string, level model.UserLevel, difficulty int) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{TopicID: topicID, Title: title, Level: level, DifficultyScore: difficulty}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

// CreateQuiz stores a quiz with one question per entry of correct. Each
// question gets two options, "right" and "wrong"; correct[i] false leaves
// question i without a correct option.
func CreateQuiz(t *testing.T, db *gorm.DB, lessonID uint, passingScore int, correct ...bool) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{LessonID: lessonID, Title: "Quiz", PassingScore: passingScore, TimeLimit: model.DefaultTimeLimit}
	require.NoError(t, db.Omit("Questions").Create(quiz).Error)

	for i, hasCorrect := range correct {
		q := model.Question{QuizID: quiz.ID, Content: fmt.Sprintf("Question %d", i+1), Type: model.QuestionMultipleChoice}
		require.NoError(t, db.Omit("Options").Create(&q).Error)
		q.Options = []model.QuestionOption{
			{QuestionID: q.ID, Content: "right", IsCorrect: hasCorrect},
			{QuestionID: q.ID, Content: "wrong"},
		}
		require.NoError(t, db.Create(&q.Options).Error)
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

// RightOption and WrongOption pick the options CreateQuiz made for q.
func RightOption(q model.Question) *uint { return &q.Options[0].ID }

func WrongOption(q model.Question) *uint { return &q.Options[1].ID }
