package controller

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// ListLessons godoc
// @Summary List lessons with their topic names
// @Tags lessons
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	lessons, err := c.LessonService.ListLessons()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// ListByTopic godoc
// @Summary List a topic's lessons, easiest first
// @Tags lessons
// @Produce json
// @Param topicId path int true "Topic ID"
// @Param level query string false "Learner level" Enums(beginner, intermediate, advanced)
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response
// @Router /lessons/topic/{topicId} [get]
func (c *LessonController) ListByTopic(ctx *gin.Context) {
	topicID, ok := pathID(ctx, "topicId")
	if !ok {
		return
	}
	lessons, err := c.LessonService.ListByTopic(topicID, model.UserLevel(ctx.Query("level")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.LessonReq true "Lesson"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Topic not found"
// @Router /lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.LessonService.CreateLesson(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson, "Lesson created")
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param body body service.LessonReq true "Fields to change"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.LessonService.UpdateLesson(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, lesson, "Lesson updated")
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.LessonService.DeleteLesson(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Lesson deleted")
}
