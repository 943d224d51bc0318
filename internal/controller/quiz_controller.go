package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GetQuizByLesson godoc
// @Summary Get the quiz of a lesson
// @Tags quizzes
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "Lesson or quiz not found"
// @Router /quizzes/lesson/{lessonId} [get]
func (c *QuizController) GetQuizByLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		return
	}
	quiz, err := c.QuizService.GetQuizByLesson(lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions and options
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	quiz, err := c.QuizService.GetQuiz(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// CreateQuiz godoc
// @Summary Create a quiz for a lesson
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizReq true "Quiz definition"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz, err := c.QuizService.CreateQuiz(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"quiz_id": quiz.ID}, "Quiz created")
}

// UpdateQuiz godoc
// @Summary Replace a quiz definition
// @Description The header is updated and the whole question set is replaced in one transaction.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param body body service.QuizReq true "Quiz definition"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.QuizService.UpdateQuiz(id, req); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Quiz updated")
}

// AddQuestion godoc
// @Summary Append a question to a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param body body service.QuestionReq true "Question with its options"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question, err := c.QuizService.AddQuestion(quizID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, question, "Question added")
}

// AddOption godoc
// @Summary Append an answer option to a question
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "Question ID"
// @Param body body service.OptionReq true "Option"
// @Success 201 {object} util.Response{data=model.QuestionOption}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/questions/{questionId}/options [post]
func (c *QuizController) AddOption(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}
	var req service.OptionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	option, err := c.QuizService.AddOption(questionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, option, "Option added")
}

// DeleteQuiz godoc
// @Summary Delete a quiz and its attempt history
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuiz(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Quiz deleted")
}

// SubmitQuiz godoc
// @Summary Grade an attempt
// @Description Answers naming questions outside the quiz are ignored. Unanswered questions count as wrong.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param body body service.SubmitQuizReq true "Answers"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Quiz or user not found"
// @Failure 500 {object} util.Response
// @Router /quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.SubmitQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Answers == nil {
		util.BadRequest(ctx, "user_id and answers are required")
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), quizID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	message := "Keep practicing!"
	if result.Passed {
		message = "Congratulations! You passed"
	}
	util.SuccessWithMessage(ctx, result, message)
}

// GetUserResults godoc
// @Summary A learner's attempt history
// @Description Without quiz_id only the 50 most recent attempts are returned.
// @Tags quizzes
// @Produce json
// @Param userId path int true "User ID"
// @Param quiz_id query int false "Only attempts on this quiz"
// @Success 200 {object} util.Response{data=[]repository.QuizResultRow}
// @Router /quizzes/results/user/{userId} [get]
func (c *QuizController) GetUserResults(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	quizID, ok := util.OptionalID(ctx.Query("quiz_id"))
	if !ok {
		util.BadRequest(ctx, "Invalid quiz_id")
		return
	}
	results, err := c.QuizService.GetUserResults(userID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// GetResult godoc
// @Summary An attempt with its answer transcript
// @Tags quizzes
// @Produce json
// @Param resultId path int true "Result ID"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 404 {object} util.Response
// @Router /quizzes/results/{resultId} [get]
func (c *QuizController) GetResult(ctx *gin.Context) {
	resultID, ok := pathID(ctx, "resultId")
	if !ok {
		return
	}
	result, err := c.QuizService.GetResult(resultID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetBestScore godoc
// @Summary A learner's best attempt on a quiz
// @Description data is null when the learner has no attempt.
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Router /quizzes/{id}/best-score/{userId} [get]
func (c *QuizController) GetBestScore(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	best, err := c.QuizService.GetBestScore(userID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if best == nil {
		util.SuccessNullable(ctx, nil)
		return
	}
	util.Success(ctx, best)
}

// GetUserStats godoc
// @Summary Attempt statistics of a learner
// @Description passed_count uses the fixed 70% threshold.
// @Tags quizzes
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=repository.UserQuizStats}
// @Router /quizzes/stats/user/{userId} [get]
func (c *QuizController) GetUserStats(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	stats, err := c.QuizService.GetUserStats(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
