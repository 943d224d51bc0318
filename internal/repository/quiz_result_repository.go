package repository

import (
	"english_app_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// QuizResultRow is an attempt joined with quiz and lesson titles.
type QuizResultRow struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuizID         uint      `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeSpent      *int      `json:"time_spent"`
	CompletedAt    time.Time `json:"completed_at"`
	QuizTitle      string    `json:"quiz_title"`
	LessonTitle    string    `json:"lesson_title"`
}

// UserQuizStats aggregates every attempt of one user.
type UserQuizStats struct {
	TotalAttempts int64   `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	BestScore     float64 `json:"best_score"`
	PassedCount   int64   `json:"passed_count"`
}

// CreateWithAnswers persists the attempt and its transcript atomically.
func (r *QuizResultRepository) CreateWithAnswers(result *model.QuizResult, answers []model.QuizAnswerDetail) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(result).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].QuizResultID = result.ID
		}
		return tx.Create(&answers).Error
	})
}

func (r *QuizResultRepository) history() *gorm.DB {
	return r.DB.Table("quiz_results qr").
		Select("qr.id, qr.user_id, qr.quiz_id, qr.score, qr.total_questions, qr.percentage, qr.time_spent, qr.completed_at, " +
			"COALESCE(q.title, '') AS quiz_title, COALESCE(l.title, '') AS lesson_title").
		Joins("LEFT JOIN quizzes q ON qr.quiz_id = q.id").
		Joins("LEFT JOIN lessons l ON q.lesson_id = l.id")
}

// FindByUser lists the user's most recent attempts across all quizzes.
func (r *QuizResultRepository) FindByUser(userID uint, limit int) ([]QuizResultRow, error) {
	rows := []QuizResultRow{}
	err := r.history().
		Where("qr.user_id = ?", userID).
		Order("qr.completed_at DESC").
		Order("qr.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *QuizResultRepository) FindByUserAndQuiz(userID, quizID uint) ([]QuizResultRow, error) {
	rows := []QuizResultRow{}
	err := r.history().
		Where("qr.user_id = ? AND qr.quiz_id = ?", userID, quizID).
		Order("qr.completed_at DESC").
		Order("qr.id DESC").
		Scan(&rows).Error
	return rows, err
}

// FindByID returns the attempt and its transcript with question and selected
// option text.
func (r *QuizResultRepository) FindByID(id uint) (*model.QuizResult, error) {
	var result model.QuizResult
	if err := r.DB.First(&result, id).Error; err != nil {
		return nil, err
	}

	answers := []model.QuizAnswerDetail{}
	err := r.DB.Model(&model.QuizAnswerDetail{}).
		Select("quiz_answer_details.*, COALESCE(qs.content, '') AS question_content, " +
			"COALESCE(qs.type, '') AS question_type, COALESCE(o.content, '') AS selected_answer").
		Joins("LEFT JOIN questions qs ON quiz_answer_details.question_id = qs.id").
		Joins("LEFT JOIN question_options o ON quiz_answer_details.selected_option_id = o.id").
		Where("quiz_answer_details.quiz_result_id = ?", id).
		Order("quiz_answer_details.id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	result.Answers = answers
	return &result, nil
}

// FindBest returns the highest-percentage attempt, latest first on ties, or
// nil when the user never attempted the quiz.
func (r *QuizResultRepository) FindBest(userID, quizID uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("percentage DESC").
		Order("completed_at DESC").
		Order("id DESC").
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// StatsByUser aggregates the user's attempts; passThreshold decides passed_count.
func (r *QuizResultRepository) StatsByUser(userID uint, passThreshold float64) (*UserQuizStats, error) {
	var stats UserQuizStats
	err := r.DB.Model(&model.QuizResult{}).
		Select("COUNT(*) AS total_attempts, "+
			"COALESCE(AVG(percentage), 0) AS average_score, "+
			"COALESCE(MAX(percentage), 0) AS best_score, "+
			"COALESCE(SUM(CASE WHEN percentage >= ? THEN 1 ELSE 0 END), 0) AS passed_count", passThreshold).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
