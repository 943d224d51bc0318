package repository

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/testutil"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizFixture(t *testing.T) (*QuizRepository, *QuizResultRepository, *model.Lesson, *model.User) {
	db := testutil.NewDB(t)
	topic := testutil.CreateTopic(t, db, "Travel")
	lesson := testutil.CreateLesson(t, db, topic.ID, "At the airport", model.Beginner, 1)
	user := testutil.CreateUser(t, db, "learner@example.com", model.Student)
	return NewQuizRepository(db), NewQuizResultRepository(db), lesson, user
}

func TestQuizRepositoryCreateLoadsFullDefinition(t *testing.T) {
	repo, _, lesson, _ := newQuizFixture(t)

	quiz := &model.Quiz{
		LessonID: lesson.ID,
		Title:    "Airport words",
		Questions: []model.Question{
			{Content: "Gate?", Options: []model.QuestionOption{{Content: "door", IsCorrect: true}, {Content: "plane"}}},
			{Content: "Luggage?", Type: "true_false", Options: []model.QuestionOption{{Content: "bags", IsCorrect: true}}},
		},
	}
	require.NoError(t, repo.Create(quiz))
	require.NotZero(t, quiz.ID)

	loaded, err := repo.FindByID(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)
	assert.Equal(t, "Gate?", loaded.Questions[0].Content)
	assert.Equal(t, model.QuestionMultipleChoice, loaded.Questions[0].Type)
	assert.Equal(t, "true_false", loaded.Questions[1].Type)
	require.Len(t, loaded.Questions[0].Options, 2)
	assert.Equal(t, "door", loaded.Questions[0].CorrectOption().Content)

	byLesson, err := repo.FindByLessonID(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, byLesson.ID)
}

func TestQuizRepositoryReplaceAll(t *testing.T) {
	repo, _, lesson, _ := newQuizFixture(t)

	quiz := &model.Quiz{
		LessonID: lesson.ID,
		Title:    "Old",
		Questions: []model.Question{
			{Content: "Q1", Options: []model.QuestionOption{{Content: "a", IsCorrect: true}}},
			{Content: "Q2", Options: []model.QuestionOption{{Content: "b", IsCorrect: true}}},
		},
	}
	require.NoError(t, repo.Create(quiz))
	oldQuestionID := quiz.Questions[0].ID

	replacement := &model.Quiz{
		BaseModel:    model.BaseModel{ID: quiz.ID},
		Title:        "New",
		PassingScore: 80,
		TimeLimit:    300,
		Questions: []model.Question{
			{Content: "Only question", Options: []model.QuestionOption{{Content: "x"}, {Content: "y", IsCorrect: true}}},
		},
	}
	require.NoError(t, repo.ReplaceAll(replacement))

	loaded, err := repo.FindByID(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", loaded.Title)
	assert.Equal(t, 80, loaded.PassingScore)
	assert.Equal(t, 300, loaded.TimeLimit)
	assert.Equal(t, lesson.ID, loaded.LessonID)
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, "Only question", loaded.Questions[0].Content)
	assert.Equal(t, "y", loaded.Questions[0].CorrectOption().Content)

	var leftovers int64
	require.NoError(t, repo.DB.Model(&model.QuestionOption{}).Where("question_id = ?", oldQuestionID).Count(&leftovers).Error)
	assert.Zero(t, leftovers)
}

func TestQuizRepositoryReplaceAllKeepsOldDefinitionOnFailure(t *testing.T) {
	repo, _, lesson, _ := newQuizFixture(t)
	quiz := testutil.CreateQuiz(t, repo.DB, lesson.ID, 70, true, true)

	errRefused := errors.New("option insert refused")
	require.NoError(t, repo.DB.Callback().Create().Before("gorm:create").Register("test:refuse_options", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "question_options" {
			tx.AddError(errRefused)
		}
	}))

	err := repo.ReplaceAll(&model.Quiz{
		BaseModel: model.BaseModel{ID: quiz.ID},
		Title:     "Replacement",
		Questions: []model.Question{
			{Content: "New question", Options: []model.QuestionOption{{Content: "z", IsCorrect: true}}},
		},
	})
	require.ErrorIs(t, err, errRefused)

	loaded, err := repo.FindByID(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.Title, loaded.Title)
	require.Len(t, loaded.Questions, 2)
	for i, q := range loaded.Questions {
		assert.Equal(t, quiz.Questions[i].ID, q.ID)
		assert.Equal(t, quiz.Questions[i].Content, q.Content)
		assert.Len(t, q.Options, len(quiz.Questions[i].Options))
	}
}

func TestQuizRepositoryAddQuestionAndOption(t *testing.T) {
	repo, _, lesson, _ := newQuizFixture(t)
	quiz := &model.Quiz{LessonID: lesson.ID, Title: "Growing"}
	require.NoError(t, repo.Create(quiz))

	question := &model.Question{Content: "Added", Options: []model.QuestionOption{{Content: "first"}}}
	require.NoError(t, repo.AddQuestion(quiz.ID, question))
	require.NotZero(t, question.ID)
	assert.Equal(t, quiz.ID, question.QuizID)

	require.NoError(t, repo.AddOption(&model.QuestionOption{QuestionID: question.ID, Content: "second", IsCorrect: true}))

	loaded, err := repo.FindQuestion(question.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Options, 2)
	assert.Equal(t, "second", loaded.CorrectOption().Content)
}

func TestQuizRepositoryDeleteRemovesAttempts(t *testing.T) {
	repo, results, lesson, user := newQuizFixture(t)
	quiz := testutil.CreateQuiz(t, repo.DB, lesson.ID, 70, true, true)

	attempt := &model.QuizResult{UserID: user.ID, QuizID: quiz.ID, Score: 1, TotalQuestions: 2, Percentage: 50, CompletedAt: time.Now()}
	require.NoError(t, results.CreateWithAnswers(attempt, []model.QuizAnswerDetail{
		{QuestionID: quiz.Questions[0].ID, SelectedOptionID: testutil.RightOption(quiz.Questions[0]), IsCorrect: true},
	}))

	require.NoError(t, repo.Delete(quiz.ID))

	exists, err := repo.Exists(quiz.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	for _, table := range []interface{}{&model.Question{}, &model.QuestionOption{}, &model.QuizResult{}, &model.QuizAnswerDetail{}} {
		var count int64
		require.NoError(t, repo.DB.Model(table).Count(&count).Error)
		assert.Zero(t, count, "%T rows left after delete", table)
	}
}
