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

func lessonTitles(lessons []model.Lesson) []string {
	titles := make([]string, 0, len(lessons))
	for _, l := range lessons {
		titles = append(titles, l.Title)
	}
	return titles
}

func TestListByTopicFiltersByLevel(t *testing.T) {
	db := testutil.NewDB(t)
	topic := testutil.CreateTopic(t, db, "Business")
	testutil.CreateLesson(t, db, topic.ID, "Negotiation", model.Advanced, 1)
	testutil.CreateLesson(t, db, topic.ID, "Emails", model.Intermediate, 2)
	testutil.CreateLesson(t, db, topic.ID, "Greetings", model.Beginner, 3)
	svc := NewLessonService(repository.NewLessonRepository(db), repository.NewTopicRepository(db))

	tests := []struct {
		level model.UserLevel
		want  []string
	}{
		{model.Beginner, []string{"Greetings"}},
		{model.Intermediate, []string{"Emails", "Greetings"}},
		{model.Advanced, []string{"Negotiation", "Emails", "Greetings"}},
		{"", []string{"Negotiation", "Emails", "Greetings"}},
		{"guru", []string{"Negotiation", "Emails", "Greetings"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			lessons, err := svc.ListByTopic(topic.ID, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lessonTitles(lessons))
		})
	}

	_, err := svc.ListByTopic(topic.ID+1, model.Beginner)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}

func TestLessonCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	topic := testutil.CreateTopic(t, db, "Business")
	svc := NewLessonService(repository.NewLessonRepository(db), repository.NewTopicRepository(db))

	title := " Small talk "
	_, err := svc.CreateLesson(LessonReq{Title: &title})
	assert.ErrorIs(t, err, util.ErrMissingFields)
	missing := uint(404)
	_, err = svc.CreateLesson(LessonReq{TopicID: &missing, Title: &title})
	assert.ErrorIs(t, err, util.ErrTopicNotFound)

	lesson, err := svc.CreateLesson(LessonReq{TopicID: &topic.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Small talk", lesson.Title)
	assert.Equal(t, model.Beginner, lesson.Level)
	assert.Equal(t, 1, lesson.DifficultyScore)

	level := model.Advanced
	difficulty := 5
	updated, err := svc.UpdateLesson(lesson.ID, LessonReq{Level: &level, DifficultyScore: &difficulty})
	require.NoError(t, err)
	assert.Equal(t, "Small talk", updated.Title)
	assert.Equal(t, model.Advanced, updated.Level)

	loaded, err := svc.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.DifficultyScore)
	assert.Equal(t, "Business", loaded.TopicName)

	require.NoError(t, svc.DeleteLesson(lesson.ID))
	assert.ErrorIs(t, svc.DeleteLesson(lesson.ID), util.ErrLessonNotFound)
}

func TestTopicCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTopicService(repository.NewTopicRepository(db))

	blank := "   "
	_, err := svc.CreateTopic(TopicReq{Name: &blank})
	assert.ErrorIs(t, err, util.ErrMissingFields)

	name, desc := "Shopping", "At the market"
	topic, err := svc.CreateTopic(TopicReq{Name: &name, Description: &desc})
	require.NoError(t, err)

	image := "/uploads/shop.png"
	updated, err := svc.UpdateTopic(topic.ID, TopicReq{ImageURL: &image})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", updated.Name)
	assert.Equal(t, "At the market", updated.Description)
	assert.Equal(t, image, updated.ImageURL)

	topics, err := svc.ListTopics()
	require.NoError(t, err)
	assert.Len(t, topics, 1)

	require.NoError(t, svc.DeleteTopic(topic.ID))
	_, err = svc.GetTopic(topic.ID)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
	assert.ErrorIs(t, svc.DeleteTopic(topic.ID), util.ErrTopicNotFound)
}
