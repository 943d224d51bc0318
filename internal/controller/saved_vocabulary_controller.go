package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SavedVocabularyController struct {
	SavedService *service.SavedVocabularyService
}

func NewSavedVocabularyController(savedService *service.SavedVocabularyService) *SavedVocabularyController {
	return &SavedVocabularyController{SavedService: savedService}
}

// SaveVocabularyRequest identifies a learner's bookmark.
// swagger:model SaveVocabularyRequest
type SaveVocabularyRequest struct {
	UserID       uint `json:"userId" binding:"required"`
	VocabularyID uint `json:"vocabularyId" binding:"required"`
}

// ListSaved godoc
// @Summary List a learner's saved words, newest first
// @Tags saved-vocabularies
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=[]repository.SavedVocabularyRow}
// @Router /saved-vocabularies/{userId} [get]
func (c *SavedVocabularyController) ListSaved(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	rows, err := c.SavedService.ListSaved(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ListSavedIDs godoc
// @Summary List the ids of a learner's saved words
// @Tags saved-vocabularies
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} util.Response{data=[]int}
// @Router /saved-vocabularies/{userId}/ids [get]
func (c *SavedVocabularyController) ListSavedIDs(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	ids, err := c.SavedService.ListSavedIDs(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ids)
}

// CheckSaved godoc
// @Summary Check whether a word is saved
// @Tags saved-vocabularies
// @Produce json
// @Param userId path int true "User ID"
// @Param vocabularyId path int true "Vocabulary ID"
// @Success 200 {object} util.Response{data=object}
// @Router /saved-vocabularies/{userId}/check/{vocabularyId} [get]
func (c *SavedVocabularyController) CheckSaved(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	vocabularyID, ok := pathID(ctx, "vocabularyId")
	if !ok {
		return
	}
	saved, err := c.SavedService.IsSaved(userID, vocabularyID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"is_saved": saved})
}

// Save godoc
// @Summary Save a word
// @Tags saved-vocabularies
// @Accept json
// @Produce json
// @Param body body SaveVocabularyRequest true "Bookmark"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Vocabulary not found"
// @Failure 409 {object} util.Response "Already saved"
// @Router /saved-vocabularies [post]
func (c *SavedVocabularyController) Save(ctx *gin.Context) {
	var req SaveVocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "userId and vocabularyId are required")
		return
	}
	if err := c.SavedService.Save(req.UserID, req.VocabularyID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, nil, "Vocabulary saved")
}

// Toggle godoc
// @Summary Save a word, or unsave it when already saved
// @Tags saved-vocabularies
// @Accept json
// @Produce json
// @Param body body SaveVocabularyRequest true "Bookmark"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /saved-vocabularies/toggle [post]
func (c *SavedVocabularyController) Toggle(ctx *gin.Context) {
	var req SaveVocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "userId and vocabularyId are required")
		return
	}
	saved, err := c.SavedService.Toggle(req.UserID, req.VocabularyID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	message := "Vocabulary unsaved"
	if saved {
		message = "Vocabulary saved"
	}
	util.SuccessWithMessage(ctx, gin.H{"is_saved": saved}, message)
}

// Unsave godoc
// @Summary Remove a saved word
// @Tags saved-vocabularies
// @Produce json
// @Param userId path int true "User ID"
// @Param vocabularyId path int true "Vocabulary ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /saved-vocabularies/{userId}/{vocabularyId} [delete]
func (c *SavedVocabularyController) Unsave(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	vocabularyID, ok := pathID(ctx, "vocabularyId")
	if !ok {
		return
	}
	if err := c.SavedService.Unsave(userID, vocabularyID); err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, nil, "Vocabulary unsaved")
}
