package service

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/testutil"
	"english_app_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedVocabulary(t *testing.T) {
	db := testutil.NewDB(t)
	topic := testutil.CreateTopic(t, db, "Weather")
	lesson := testutil.CreateLesson(t, db, topic.ID, "Seasons", model.Beginner, 1)
	user := testutil.CreateUser(t, db, "learner@example.com", model.Student)
	word := &model.Vocabulary{LessonID: lesson.ID, Word: "rain", Meaning: "mua"}
	require.NoError(t, db.Create(word).Error)

	svc := NewSavedVocabularyService(repository.NewSavedVocabularyRepository(db), repository.NewVocabularyRepository(db))

	require.NoError(t, svc.Save(user.ID, word.ID))
	assert.ErrorIs(t, svc.Save(user.ID, word.ID), util.ErrAlreadySaved)
	assert.ErrorIs(t, svc.Save(user.ID, word.ID+1), util.ErrVocabularyNotFound)

	rows, err := svc.ListSaved(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "rain", rows[0].Word)
	assert.Equal(t, "Seasons", rows[0].LessonTitle)

	saved, err := svc.Toggle(user.ID, word.ID)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.ErrorIs(t, svc.Unsave(user.ID, word.ID), util.ErrSavedNotFound)

	saved, err = svc.Toggle(user.ID, word.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	ids, err := svc.ListSavedIDs(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{word.ID}, ids)
}
