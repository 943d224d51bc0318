package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

type VocabularyController struct {
	VocabularyService *service.VocabularyService
	MaxUploadMB       int64
}

func NewVocabularyController(vocabularyService *service.VocabularyService, maxUploadMB int64) *VocabularyController {
	return &VocabularyController{
		VocabularyService: vocabularyService,
		MaxUploadMB:       maxUploadMB,
	}
}

// ListVocabularies godoc
// @Summary List vocabulary
// @Tags vocabularies
// @Produce json
// @Param lesson_id query int false "Only this lesson's words"
// @Success 200 {object} util.Response{data=[]model.Vocabulary}
// @Router /vocabularies [get]
func (c *VocabularyController) ListVocabularies(ctx *gin.Context) {
	lessonID, ok := util.OptionalID(ctx.Query("lesson_id"))
	if !ok {
		util.BadRequest(ctx, "Invalid lesson_id")
		return
	}
	words, err := c.VocabularyService.ListVocabularies(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, words)
}

// ListByLesson godoc
// @Summary List a lesson's vocabulary
// @Tags vocabularies
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=[]model.Vocabulary}
// @Failure 404 {object} util.Response
// @Router /vocabularies/lesson/{lessonId} [get]
func (c *VocabularyController) ListByLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "lessonId")
	if !ok {
		return
	}
	words, err := c.VocabularyService.ListByLesson(lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, words)
}

// GetVocabulary godoc
// @Summary Get a vocabulary entry
// @Tags vocabularies
// @Produce json
// @Param id path int true "Vocabulary ID"
// @Success 200 {object} util.Response{data=model.Vocabulary}
// @Failure 404 {object} util.Response
// @Router /vocabularies/{id} [get]
func (c *VocabularyController) GetVocabulary(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	word, err := c.VocabularyService.GetVocabulary(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, word)
}

// CreateVocabulary godoc
// @Summary Add a word to a lesson
// @Description Missing phonetic or audio is looked up in the dictionary when enabled.
// @Tags vocabularies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.VocabularyReq true "Word"
// @Success 201 {object} util.Response{data=model.Vocabulary}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /vocabularies [post]
func (c *VocabularyController) CreateVocabulary(ctx *gin.Context) {
	var req service.VocabularyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	word, err := c.VocabularyService.CreateVocabulary(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, word, "Vocabulary created")
}

// CreateBulk godoc
// @Summary Add several words to a lesson at once
// @Tags vocabularies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BulkVocabularyReq true "Words"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /vocabularies/bulk [post]
func (c *VocabularyController) CreateBulk(ctx *gin.Context) {
	var req service.BulkVocabularyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	count, err := c.VocabularyService.CreateBulk(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"count": count}, fmt.Sprintf("Created %d vocabularies", count))
}

// ImportVocabularies godoc
// @Summary Import a lesson's words from a spreadsheet
// @Description Columns: word, meaning, phonetic, audio_url. The first row is a header.
// @Tags vocabularies
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param lesson_id formData int true "Lesson ID"
// @Param file formData file true ".xlsx or .csv file"
// @Success 201 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response
// @Failure 415 {object} util.Response
// @Router /vocabularies/import [post]
func (c *VocabularyController) ImportVocabularies(ctx *gin.Context) {
	lessonID, ok := util.ParseID(ctx.PostForm("lesson_id"))
	if !ok {
		util.BadRequest(ctx, "lesson_id is required")
		return
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > c.MaxUploadMB<<20 {
		util.BadRequest(ctx, fmt.Sprintf("File exceeds %d MB", c.MaxUploadMB))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.VocabularyService.Import(ctx.Request.Context(), lessonID, fileHeader.Filename, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result, fmt.Sprintf("Imported %d vocabularies", result.Created))
}

// UpdateVocabulary godoc
// @Summary Update a vocabulary entry
// @Tags vocabularies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Vocabulary ID"
// @Param body body service.VocabularyReq true "Fields to change"
// @Success 200 {object} util.Response{data=model.Vocabulary}
// @Failure 404 {object} util.Response
// @Router /vocabularies/{id} [put]
func (c *VocabularyController) UpdateVocabulary(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.VocabularyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	word, err := c.VocabularyService.UpdateVocabulary(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, word, "Vocabulary updated")
}

// DeleteVocabulary godoc
// @Summary Delete a vocabulary entry
// @Tags vocabularies
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Vocabulary ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /vocabularies/{id} [delete]
func (c *VocabularyController) DeleteVocabulary(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.VocabularyService.DeleteVocabulary(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Vocabulary deleted")
}
