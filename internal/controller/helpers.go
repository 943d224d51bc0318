package controller

import (
	"english_app_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive id path parameter, answering 400 when it is not one.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParseID(ctx.Param(name))
	if !ok {
		util.BadRequest(ctx, "Invalid "+name)
	}
	return id, ok
}

var notFoundErrors = []error{
	util.ErrUserNotFound,
	util.ErrTopicNotFound,
	util.ErrLessonNotFound,
	util.ErrVocabularyNotFound,
	util.ErrSavedNotFound,
	util.ErrProgressNotFound,
	util.ErrQuizNotFound,
	util.ErrQuestionNotFound,
	util.ErrQuizResultNotFound,
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// respondError maps service errors onto HTTP statuses. Anything unknown is
// logged and answered with a generic 500.
func respondError(ctx *gin.Context, err error) {
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			util.NotFound(ctx, capitalize(nf.Error()))
			return
		}
	}

	switch {
	case errors.Is(err, util.ErrMissingFields):
		util.BadRequest(ctx, "Missing required fields")
	case errors.Is(err, util.ErrInvalidSpreadsheet):
		util.BadRequest(ctx, "Invalid spreadsheet")
	case errors.Is(err, util.ErrUnsupportedMediaType):
		util.Error(ctx, http.StatusUnsupportedMediaType, "Unsupported media type")
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, "Email already registered")
	case errors.Is(err, util.ErrAlreadySaved):
		util.Conflict(ctx, "Vocabulary already saved")
	default:
		util.LogInternalError(ctx, err)
	}
}
