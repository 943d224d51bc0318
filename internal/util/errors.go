package util

import "errors"

var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrWrongPassword        = errors.New("wrong password")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrVocabularyNotFound   = errors.New("vocabulary not found")
	ErrAlreadySaved         = errors.New("vocabulary already saved")
	ErrSavedNotFound        = errors.New("saved vocabulary not found")
	ErrProgressNotFound     = errors.New("progress not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrQuizResultNotFound   = errors.New("quiz result not found")
	ErrInvalidSpreadsheet   = errors.New("invalid spreadsheet")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
