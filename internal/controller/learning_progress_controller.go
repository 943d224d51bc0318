package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningProgressController struct {
	ProgressService *service.LearningProgressService
}

func NewLearningProgressController(progressService *service.LearningProgressService) *LearningProgressController {
	return &LearningProgressController{ProgressService: progressService}
}

// CompleteLessonRequest marks a lesson as done.
// swagger:model CompleteLessonRequest
type CompleteLessonRequest struct {
	UserID   uint `json:"userId" binding:"required"`
	LessonID uint `json:"lessonId" binding:"required"`
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Description Completing a lesson again only refreshes its completion time.
// @Tags learning-progress
// @Accept json
// @Produce json
// @Param body body CompleteLessonRequest true "Completion"
// @Success 200 {object} util.Response{data=service.ProgressStats}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "User or lesson not found"
// @Router /learning-progress/complete [post]
func (c *LearningProgressController) CompleteLesson(ctx *gin.Context) {
	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "userId and lessonId are required")
		return
	}
	stats, err := c.ProgressService.CompleteLesson(ctx.Request.Context(), req.UserID, req.LessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, stats, "Lesson marked as completed")
}

// GetUserProgress godoc
// @Summary Streak, counters and completed lessons of a learner
// @Tags learning-progress
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=service.UserProgress}
// @Router /learning-progress/user/{userId} [get]
func (c *LearningProgressController) GetUserProgress(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	progress, err := c.ProgressService.GetUserProgress(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// CheckCompletion godoc
// @Summary Check whether a learner completed a lesson
// @Tags learning-progress
// @Produce json
// @Param userId path int true "User ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=object}
// @Router /learning-progress/check/{userId}/{lessonId} [get]
func (c *LearningProgressController) CheckCompletion(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		return
	}
	completed, err := c.ProgressService.IsCompleted(userID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"is_completed": completed})
}

// RemoveCompletion godoc
// @Summary Forget a lesson completion
// @Tags learning-progress
// @Produce json
// @Param userId path int true "User ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-progress/{userId}/{lessonId} [delete]
func (c *LearningProgressController) RemoveCompletion(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		return
	}
	if err := c.ProgressService.RemoveCompletion(userID, lessonID); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Progress removed")
}

// GetTopicProgress godoc
// @Summary Completed and total lessons of a topic
// @Tags learning-progress
// @Produce json
// @Param userId path int true "User ID"
// @Param topicId path int true "Topic ID"
// @Success 200 {object} util.Response{data=service.TopicProgress}
// @Failure 404 {object} util.Response
// @Router /learning-progress/user/{userId}/topic/{topicId} [get]
func (c *LearningProgressController) GetTopicProgress(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	topicID, ok := pathID(ctx, "topicId")
	if !ok {
		return
	}
	progress, err := c.ProgressService.GetTopicProgress(userID, topicID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
