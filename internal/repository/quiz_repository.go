package repository

import (
	"english_app_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func preloadQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id ASC") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("question_options.id ASC") })
}

// FindByID loads the full definition: header, questions and options.
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := preloadQuestions(r.DB).First(&quiz, id).Error
	return &quiz, err
}

// FindByLessonID returns the first quiz attached to the lesson with its questions.
func (r *QuizRepository) FindByLessonID(lessonID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := preloadQuestions(r.DB).Where("lesson_id = ?", lessonID).Order("id ASC").First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) FindQuestion(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("question_options.id ASC") }).
		First(&question, id).Error
	return &question, err
}

func (r *QuizRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

// Create stores the quiz header and every question and option in one transaction.
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return err
		}
		return insertQuestions(tx, quiz.ID, quiz.Questions)
	})
}

// AddQuestion appends a question, with its options, to an existing quiz.
func (r *QuizRepository) AddQuestion(quizID uint, question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		questions := []model.Question{*question}
		if err := insertQuestions(tx, quizID, questions); err != nil {
			return err
		}
		*question = questions[0]
		return nil
	})
}

func (r *QuizRepository) AddOption(option *model.QuestionOption) error {
	return r.DB.Create(option).Error
}

// ReplaceAll overwrites the header and swaps the whole question set. Old
// questions and options are deleted before the new ones are inserted; a
// failure at any step leaves the previous definition in place.
func (r *QuizRepository) ReplaceAll(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Updates(map[string]interface{}{
			"title":         quiz.Title,
			"description":   quiz.Description,
			"passing_score": quiz.PassingScore,
			"time_limit":    quiz.TimeLimit,
		}).Error; err != nil {
			return err
		}
		if err := deleteQuestions(tx, quiz.ID); err != nil {
			return err
		}
		return insertQuestions(tx, quiz.ID, quiz.Questions)
	})
}

// Delete removes the quiz, its questions and options and every recorded attempt.
func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var resultIDs []uint
		if err := tx.Model(&model.QuizResult{}).Where("quiz_id = ?", id).Pluck("id", &resultIDs).Error; err != nil {
			return err
		}
		if len(resultIDs) > 0 {
			if err := tx.Where("quiz_result_id IN ?", resultIDs).Delete(&model.QuizAnswerDetail{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", resultIDs).Delete(&model.QuizResult{}).Error; err != nil {
				return err
			}
		}
		if err := deleteQuestions(tx, id); err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func deleteQuestions(tx *gorm.DB, quizID uint) error {
	var questionIDs []uint
	if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuestionOption{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", questionIDs).Delete(&model.Question{}).Error
}

func insertQuestions(tx *gorm.DB, quizID uint, questions []model.Question) error {
	for i := range questions {
		q := &questions[i]
		q.ID = 0
		q.QuizID = quizID
		if q.Type == "" {
			q.Type = model.QuestionMultipleChoice
		}
		if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
			return err
		}
		for j := range q.Options {
			o := &q.Options[j]
			o.ID = 0
			o.QuestionID = q.ID
			if err := tx.Create(o).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
