package service

import (
	"context"
	"english_app_backend/internal/config"
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/util"
	"english_app_backend/pkg/events"
	"english_app_backend/pkg/logger"
	"english_app_backend/pkg/monitoring"
	"english_app_backend/pkg/tracing"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResultHistoryLimit caps the unfiltered attempt history.
const ResultHistoryLimit = 50

type OptionReq struct {
	Content   string `json:"content"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionReq struct {
	Content     string      `json:"content"`
	Type        string      `json:"type"`
	Explanation string      `json:"explanation"`
	Options     []OptionReq `json:"options"`
}

type QuizReq struct {
	LessonID     uint          `json:"lesson_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	PassingScore *int          `json:"passing_score"`
	TimeLimit    *int          `json:"time_limit"`
	Questions    []QuestionReq `json:"questions"`
}

type AnswerReq struct {
	QuestionID       uint  `json:"question_id"`
	SelectedOptionID *uint `json:"selected_option_id"`
}

type SubmitQuizReq struct {
	UserID    uint        `json:"user_id" binding:"required"`
	Answers   []AnswerReq `json:"answers"`
	TimeSpent *int        `json:"time_spent"`
}

type GradeResult struct {
	ResultID       uint    `json:"result_id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Passed         bool    `json:"passed"`
}

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	ResultRepo *repository.QuizResultRepository
	LessonRepo *repository.LessonRepository
	UserRepo   *repository.UserRepository
	Events     events.Publisher
	Now        func() time.Time

	mu            sync.RWMutex
	thresholdMode string
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	resultRepo *repository.QuizResultRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	publisher events.Publisher,
	grading config.GradingConfig,
) *QuizService {
	s := &QuizService{
		QuizRepo:   quizRepo,
		ResultRepo: resultRepo,
		LessonRepo: lessonRepo,
		UserRepo:   userRepo,
		Events:     publisher,
		Now:        time.Now,
	}
	s.SetPassThresholdMode(grading.PassThresholdMode)
	return s
}

// SetPassThresholdMode switches how PassingScore resolves; unknown modes fall
// back to the fixed default.
func (s *QuizService) SetPassThresholdMode(mode string) {
	if mode != config.PassThresholdQuiz {
		mode = config.PassThresholdFixed
	}
	s.mu.Lock()
	s.thresholdMode = mode
	s.mu.Unlock()
}

func (s *QuizService) PassThresholdMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholdMode
}

// PassingScore is the percentage an attempt on quiz must reach to pass.
func (s *QuizService) PassingScore(quiz *model.Quiz) float64 {
	if s.PassThresholdMode() == config.PassThresholdQuiz && quiz.PassingScore > 0 {
		return float64(quiz.PassingScore)
	}
	return model.DefaultPassingScore
}

// GradeAnswers scores answers against the quiz's current definition. Answers
// naming a question outside the quiz are skipped, and only the first answer
// per question counts: repeats are neither scored nor stored, so score never
// exceeds the question count. A question without a correct option can't be
// answered correctly.
func GradeAnswers(questions []model.Question, answers []AnswerReq) (int, []model.QuizAnswerDetail) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	score := 0
	answered := make(map[uint]bool, len(answers))
	details := make([]model.QuizAnswerDetail, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok || answered[a.QuestionID] {
			continue
		}
		answered[a.QuestionID] = true

		correct := q.CorrectOption()
		isCorrect := correct != nil && a.SelectedOptionID != nil && *a.SelectedOptionID == correct.ID
		if isCorrect {
			score++
		}
		details = append(details, model.QuizAnswerDetail{
			QuestionID:       q.ID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        isCorrect,
		})
	}
	return score, details
}

// Percentage is 100*score/total; a quiz without questions scores 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) * 100 / float64(total)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Submit grades an attempt and stores it with its transcript. Every call
// creates a new result row.
func (s *QuizService) Submit(ctx context.Context, quizID uint, req SubmitQuizReq) (graded *GradeResult, err error) {
	ctx, span := tracing.Start(ctx, "quiz.submit",
		attribute.Int64("quiz.id", int64(quizID)),
		attribute.Int64("user.id", int64(req.UserID)),
	)
	defer func() { tracing.End(span, err) }()

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	ok, err := s.UserRepo.Exists(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, util.ErrUserNotFound
	}

	score, details := GradeAnswers(quiz.Questions, req.Answers)
	total := len(quiz.Questions)
	percentage := Percentage(score, total)
	passed := percentage >= s.PassingScore(quiz)

	result := &model.QuizResult{
		UserID:         req.UserID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     roundTo2(percentage),
		TimeSpent:      req.TimeSpent,
		CompletedAt:    s.Now(),
	}
	if err := s.ResultRepo.CreateWithAnswers(result, details); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}

	monitoring.ObserveQuiz(result.Percentage, passed)
	span.SetAttributes(
		attribute.Int64("quiz.result_id", int64(result.ID)),
		attribute.Float64("quiz.percentage", result.Percentage),
		attribute.Bool("quiz.passed", passed),
	)

	err = s.Events.Publish(ctx, events.Event{
		Type:       events.QuizSubmitted,
		UserID:     req.UserID,
		OccurredAt: result.CompletedAt,
		Payload: map[string]interface{}{
			"quiz_id":    quiz.ID,
			"result_id":  result.ID,
			"percentage": result.Percentage,
			"passed":     passed,
		},
	})
	if err != nil {
		logger.Log.Warn("Failed to publish quiz submission", zap.Uint("result_id", result.ID), zap.Error(err))
	}

	return &GradeResult{
		ResultID:       result.ID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     result.Percentage,
		Passed:         passed,
	}, nil
}

func buildQuestions(reqs []QuestionReq) []model.Question {
	questions := make([]model.Question, 0, len(reqs))
	for _, qr := range reqs {
		q := model.Question{
			Content:     qr.Content,
			Type:        qr.Type,
			Explanation: qr.Explanation,
			Options:     make([]model.QuestionOption, 0, len(qr.Options)),
		}
		for _, o := range qr.Options {
			q.Options = append(q.Options, model.QuestionOption{Content: o.Content, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, q)
	}
	return questions
}

func (req *QuizReq) toModel() *model.Quiz {
	quiz := &model.Quiz{
		LessonID:     req.LessonID,
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: model.DefaultPassingScore,
		TimeLimit:    model.DefaultTimeLimit,
		Questions:    buildQuestions(req.Questions),
	}
	if req.PassingScore != nil && *req.PassingScore > 0 {
		quiz.PassingScore = *req.PassingScore
	}
	if req.TimeLimit != nil && *req.TimeLimit > 0 {
		quiz.TimeLimit = *req.TimeLimit
	}
	return quiz
}

func (s *QuizService) requireLesson(lessonID uint) error {
	ok, err := s.LessonRepo.Exists(lessonID)
	if err != nil {
		return fmt.Errorf("check lesson: %w", err)
	}
	if !ok {
		return util.ErrLessonNotFound
	}
	return nil
}

func (s *QuizService) requireQuiz(quizID uint) error {
	ok, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return fmt.Errorf("check quiz: %w", err)
	}
	if !ok {
		return util.ErrQuizNotFound
	}
	return nil
}

func (s *QuizService) CreateQuiz(req QuizReq) (*model.Quiz, error) {
	if req.LessonID == 0 || req.Title == "" {
		return nil, util.ErrMissingFields
	}
	if err := s.requireLesson(req.LessonID); err != nil {
		return nil, err
	}
	quiz := req.toModel()
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// UpdateQuiz replaces the header and the whole question set. The quiz stays
// attached to its lesson.
func (s *QuizService) UpdateQuiz(quizID uint, req QuizReq) error {
	if req.LessonID == 0 || req.Title == "" {
		return util.ErrMissingFields
	}
	if err := s.requireQuiz(quizID); err != nil {
		return err
	}
	quiz := req.toModel()
	quiz.ID = quizID
	if err := s.QuizRepo.ReplaceAll(quiz); err != nil {
		return fmt.Errorf("replace quiz: %w", err)
	}
	return nil
}

// AddQuestion appends one question to an existing quiz.
func (s *QuizService) AddQuestion(quizID uint, req QuestionReq) (*model.Question, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, util.ErrMissingFields
	}
	if err := s.requireQuiz(quizID); err != nil {
		return nil, err
	}
	question := &buildQuestions([]QuestionReq{req})[0]
	if err := s.QuizRepo.AddQuestion(quizID, question); err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}
	return question, nil
}

func (s *QuizService) AddOption(questionID uint, req OptionReq) (*model.QuestionOption, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, util.ErrMissingFields
	}
	if _, err := s.QuizRepo.FindQuestion(questionID); err != nil {
		if isNotFound(err) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("load question: %w", err)
	}
	option := &model.QuestionOption{QuestionID: questionID, Content: req.Content, IsCorrect: req.IsCorrect}
	if err := s.QuizRepo.AddOption(option); err != nil {
		return nil, fmt.Errorf("add option: %w", err)
	}
	return option, nil
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	if err := s.requireQuiz(quizID); err != nil {
		return err
	}
	if err := s.QuizRepo.Delete(quizID); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizService) GetQuizByLesson(lessonID uint) (*model.Quiz, error) {
	if err := s.requireLesson(lessonID); err != nil {
		return nil, err
	}
	quiz, err := s.QuizRepo.FindByLessonID(lessonID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	return quiz, nil
}

// GetUserResults lists attempts for one quiz when quizID is set, otherwise the
// latest attempts across all quizzes.
func (s *QuizService) GetUserResults(userID uint, quizID *uint) ([]repository.QuizResultRow, error) {
	if quizID != nil {
		return s.ResultRepo.FindByUserAndQuiz(userID, *quizID)
	}
	return s.ResultRepo.FindByUser(userID, ResultHistoryLimit)
}

func (s *QuizService) GetResult(resultID uint) (*model.QuizResult, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrQuizResultNotFound
		}
		return nil, fmt.Errorf("load quiz result: %w", err)
	}
	return result, nil
}

// GetBestScore returns nil when the user has no attempt on the quiz.
func (s *QuizService) GetBestScore(userID, quizID uint) (*model.QuizResult, error) {
	return s.ResultRepo.FindBest(userID, quizID)
}

// GetUserStats always counts passes against the fixed default threshold.
func (s *QuizService) GetUserStats(userID uint) (*repository.UserQuizStats, error) {
	stats, err := s.ResultRepo.StatsByUser(userID, model.DefaultPassingScore)
	if err != nil {
		return nil, err
	}
	stats.AverageScore = roundTo2(stats.AverageScore)
	stats.BestScore = roundTo2(stats.BestScore)
	return stats, nil
}
