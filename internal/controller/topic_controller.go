package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	TopicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

// ListTopics godoc
// @Summary List topics
// @Tags topics
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Router /topics [get]
func (c *TopicController) ListTopics(ctx *gin.Context) {
	topics, err := c.TopicService.ListTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// GetTopic godoc
// @Summary Get a topic
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response
// @Router /topics/{id} [get]
func (c *TopicController) GetTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	topic, err := c.TopicService.GetTopic(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// CreateTopic godoc
// @Summary Create a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TopicReq true "Topic"
// @Success 201 {object} util.Response{data=model.Topic}
// @Failure 400 {object} util.Response
// @Router /topics [post]
func (c *TopicController) CreateTopic(ctx *gin.Context) {
	var req service.TopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.TopicService.CreateTopic(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, topic, "Topic created")
}

// UpdateTopic godoc
// @Summary Update a topic
// @Tags topics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Topic ID"
// @Param body body service.TopicReq true "Fields to change"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response
// @Router /topics/{id} [put]
func (c *TopicController) UpdateTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.TopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.TopicService.UpdateTopic(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, topic, "Topic updated")
}

// DeleteTopic godoc
// @Summary Delete a topic
// @Tags topics
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /topics/{id} [delete]
func (c *TopicController) DeleteTopic(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.TopicService.DeleteTopic(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Topic deleted")
}
