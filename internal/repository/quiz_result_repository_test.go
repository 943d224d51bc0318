package repository

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizResultRepositoryFindBest(t *testing.T) {
	_, results, lesson, user := newQuizFixture(t)
	quiz := testutil.CreateQuiz(t, results.DB, lesson.ID, 70, true, true, true, true)

	best, err := results.FindBest(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, best)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, pct := range []float64{50, 75, 75, 25} {
		require.NoError(t, results.CreateWithAnswers(&model.QuizResult{
			UserID:         user.ID,
			QuizID:         quiz.ID,
			Score:          int(pct / 25),
			TotalQuestions: 4,
			Percentage:     pct,
			CompletedAt:    base.Add(time.Duration(i) * time.Hour),
		}, nil))
	}

	best, err = results.FindBest(user.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 75.0, best.Percentage)
	// the later of the two 75% attempts wins
	assert.True(t, best.CompletedAt.Equal(base.Add(2*time.Hour)))
}

func TestQuizResultRepositoryTranscript(t *testing.T) {
	_, results, lesson, user := newQuizFixture(t)
	quiz := testutil.CreateQuiz(t, results.DB, lesson.ID, 70, true, true)
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	attempt := &model.QuizResult{UserID: user.ID, QuizID: quiz.ID, Score: 1, TotalQuestions: 2, Percentage: 50, CompletedAt: time.Now()}
	require.NoError(t, results.CreateWithAnswers(attempt, []model.QuizAnswerDetail{
		{QuestionID: q1.ID, SelectedOptionID: testutil.RightOption(q1), IsCorrect: true},
		{QuestionID: q2.ID, SelectedOptionID: nil, IsCorrect: false},
	}))

	loaded, err := results.FindByID(attempt.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Answers, 2)
	assert.Equal(t, "Question 1", loaded.Answers[0].QuestionContent)
	assert.Equal(t, "right", loaded.Answers[0].SelectedAnswer)
	assert.True(t, loaded.Answers[0].IsCorrect)
	assert.Equal(t, "", loaded.Answers[1].SelectedAnswer)
	assert.False(t, loaded.Answers[1].IsCorrect)

	_, err = results.FindByID(attempt.ID + 100)
	assert.Error(t, err)
}

func TestQuizResultRepositoryHistoryAndStats(t *testing.T) {
	_, results, lesson, user := newQuizFixture(t)
	quizA := testutil.CreateQuiz(t, results.DB, lesson.ID, 70, true)
	quizB := testutil.CreateQuiz(t, results.DB, lesson.ID, 70, true)

	stats, err := results.StatsByUser(user.ID, model.DefaultPassingScore)
	require.NoError(t, err)
	assert.Equal(t, UserQuizStats{}, *stats)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	attempts := []struct {
		quizID uint
		pct    float64
	}{
		{quizA.ID, 40},
		{quizA.ID, 70},
		{quizB.ID, 100},
	}
	for i, a := range attempts {
		require.NoError(t, results.CreateWithAnswers(&model.QuizResult{
			UserID: user.ID, QuizID: a.quizID, TotalQuestions: 1, Percentage: a.pct,
			CompletedAt: base.Add(time.Duration(i) * time.Minute),
		}, nil))
	}

	all, err := results.FindByUser(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, quizB.ID, all[0].QuizID)
	assert.Equal(t, "Quiz", all[0].QuizTitle)
	assert.Equal(t, lesson.Title, all[0].LessonTitle)

	onlyA, err := results.FindByUserAndQuiz(user.ID, quizA.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, 70.0, onlyA[0].Percentage)

	stats, err = results.StatsByUser(user.ID, model.DefaultPassingScore)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalAttempts)
	assert.InDelta(t, 70.0, stats.AverageScore, 0.001)
	assert.Equal(t, 100.0, stats.BestScore)
	assert.Equal(t, int64(2), stats.PassedCount)
}

func TestQuizResultRepositoryCreateWithAnswersRollsBack(t *testing.T) {
	_, results, lesson, user := newQuizFixture(t)
	quiz := testutil.CreateQuiz(t, results.DB, lesson.ID, 70, true, true)
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	attempt := &model.QuizResult{UserID: user.ID, QuizID: quiz.ID, Score: 2, TotalQuestions: 2, Percentage: 100, CompletedAt: time.Now()}
	err := results.CreateWithAnswers(attempt, []model.QuizAnswerDetail{
		{ID: 7, QuestionID: q1.ID, SelectedOptionID: testutil.RightOption(q1), IsCorrect: true},
		{ID: 7, QuestionID: q2.ID, SelectedOptionID: testutil.RightOption(q2), IsCorrect: true},
	})
	require.Error(t, err)

	for _, table := range []interface{}{&model.QuizResult{}, &model.QuizAnswerDetail{}} {
		var count int64
		require.NoError(t, results.DB.Model(table).Count(&count).Error)
		assert.Zero(t, count, "%T rows left after failed attempt", table)
	}
}
