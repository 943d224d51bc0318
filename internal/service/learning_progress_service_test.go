package service

import (
	"context"
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/testutil"
	"english_app_backend/internal/util"
	"english_app_backend/pkg/events"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCalculateStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 3, 10+offset, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		activity []time.Time
		want     int
	}{
		{"no activity", nil, 0},
		{"only today", []time.Time{day(0, 9)}, 1},
		{"three day run with older gap", []time.Time{day(0, 9), day(-1, 9), day(-2, 9), day(-5, 9)}, 3},
		{"run anchored yesterday", []time.Time{day(-1, 20), day(-2, 8), day(-3, 23)}, 3},
		{"latest activity two days ago", []time.Time{day(-2, 9), day(-3, 9), day(-4, 9)}, 0},
		{"today and three days ago", []time.Time{day(0, 9), day(-3, 9)}, 1},
		{"several completions on one day count once", []time.Time{day(0, 1), day(0, 12), day(0, 23), day(-1, 5), day(-1, 6)}, 2},
		{"unsorted input", []time.Time{day(-2, 9), day(0, 9), day(-1, 9)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.activity, now))
		})
	}
}

func TestCalculateStreakUsesClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, tokyo)

	// 20:00 UTC on the 9th is already the 10th in Tokyo
	activity := []time.Time{
		time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 1, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, CalculateStreak(activity, now))
	// seen from UTC both events fall on the 9th
	assert.Equal(t, 1, CalculateStreak(activity, time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)))
}

type progressFixture struct {
	db      *gorm.DB
	service *LearningProgressService
	events  *events.Recorder
	clock   testutil.Clock
	user    *model.User
	topic   *model.Topic
	lessons []*model.Lesson
}

func newProgressFixture(t *testing.T) *progressFixture {
	db := testutil.NewDB(t)
	recorder := &events.Recorder{}
	f := &progressFixture{
		db:     db,
		events: recorder,
		clock:  testutil.Clock(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)),
		user:   testutil.CreateUser(t, db, "learner@example.com", model.Student),
		topic:  testutil.CreateTopic(t, db, "Travel"),
	}
	for i, title := range []string{"Airport", "Hotel", "Taxi"} {
		f.lessons = append(f.lessons, testutil.CreateLesson(t, db, f.topic.ID, title, model.Beginner, i+1))
	}
	f.service = NewLearningProgressService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
		repository.NewUserRepository(db),
		repository.NewTopicRepository(db),
		recorder,
	)
	f.service.Now = f.clock.Now
	return f
}

func (f *progressFixture) completeAt(t *testing.T, lesson *model.Lesson, at time.Time) {
	require.NoError(t, f.db.Create(&model.LearningProgress{UserID: f.user.ID, LessonID: lesson.ID, CompletedAt: at}).Error)
}

func TestCompleteLesson(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	stats, err := f.service.CompleteLesson(ctx, f.user.ID, f.lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ProgressStats{Streak: 1, TodayCompleted: 1, TotalCompleted: 1}, *stats)

	// completing the same lesson again only touches the timestamp
	stats, err = f.service.CompleteLesson(ctx, f.user.ID, f.lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ProgressStats{Streak: 1, TodayCompleted: 1, TotalCompleted: 1}, *stats)

	stats, err = f.service.CompleteLesson(ctx, f.user.ID, f.lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, ProgressStats{Streak: 1, TodayCompleted: 2, TotalCompleted: 2}, *stats)

	assert.Equal(t, []events.EventType{events.LessonCompleted, events.LessonCompleted, events.LessonCompleted}, f.events.Types())
	assert.Equal(t, f.user.ID, f.events.Events[0].UserID)
}

func TestCompleteLessonMissingRows(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	_, err := f.service.CompleteLesson(ctx, f.user.ID+99, f.lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = f.service.CompleteLesson(ctx, f.user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	assert.Empty(t, f.events.Events)
}

func TestGetUserProgress(t *testing.T) {
	f := newProgressFixture(t)

	empty, err := f.service.GetUserProgress(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Streak)
	assert.NotNil(t, empty.CompletedLessons)
	assert.Empty(t, empty.CompletedLessons)

	f.completeAt(t, f.lessons[0], f.clock.Day(-2))
	f.completeAt(t, f.lessons[1], f.clock.Day(-1))
	f.completeAt(t, f.lessons[2], f.clock.Day(0).Add(-time.Hour))

	progress, err := f.service.GetUserProgress(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Streak)
	assert.Equal(t, int64(1), progress.TodayCompleted)
	assert.Equal(t, int64(3), progress.TotalCompleted)
	require.Len(t, progress.CompletedLessons, 3)
	assert.Equal(t, "Taxi", progress.CompletedLessons[0].LessonTitle)
	assert.Equal(t, "Travel", progress.CompletedLessons[0].TopicName)
}

func TestStreakBreaksAfterAMissedDay(t *testing.T) {
	f := newProgressFixture(t)
	f.completeAt(t, f.lessons[0], f.clock.Day(-3))
	f.completeAt(t, f.lessons[1], f.clock.Day(-2))

	progress, err := f.service.GetUserProgress(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Streak)
	assert.Equal(t, int64(0), progress.TodayCompleted)
	assert.Equal(t, int64(2), progress.TotalCompleted)
}

func TestRemoveCompletionAndTopicProgress(t *testing.T) {
	f := newProgressFixture(t)
	f.completeAt(t, f.lessons[0], f.clock.Day(0))
	f.completeAt(t, f.lessons[1], f.clock.Day(0))

	topic, err := f.service.GetTopicProgress(f.user.ID, f.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, TopicProgress{CompletedLessons: 2, TotalLessons: 3}, *topic)

	_, err = f.service.GetTopicProgress(f.user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)

	require.NoError(t, f.service.RemoveCompletion(f.user.ID, f.lessons[0].ID))
	assert.ErrorIs(t, f.service.RemoveCompletion(f.user.ID, f.lessons[0].ID), util.ErrProgressNotFound)

	done, err := f.service.IsCompleted(f.user.ID, f.lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = f.service.IsCompleted(f.user.ID, f.lessons[1].ID)
	require.NoError(t, err)
	assert.True(t, done)
}
