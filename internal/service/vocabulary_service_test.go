package service

import (
	"context"
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/testutil"
	"english_app_backend/internal/util"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDictionary struct {
	entries map[string]Pronunciation
	err     error
	calls   []string
}

func (d *fakeDictionary) Lookup(_ context.Context, word string) (Pronunciation, error) {
	d.calls = append(d.calls, word)
	if d.err != nil {
		return Pronunciation{}, d.err
	}
	return d.entries[word], nil
}

func newVocabularyService(t *testing.T, dict Dictionary) (*VocabularyService, *model.Lesson) {
	db := testutil.NewDB(t)
	topic := testutil.CreateTopic(t, db, "Daily life")
	lesson := testutil.CreateLesson(t, db, topic.ID, "Breakfast", model.Beginner, 1)
	return NewVocabularyService(repository.NewVocabularyRepository(db), repository.NewLessonRepository(db), dict), lesson
}

func strPtr(s string) *string { return &s }

func TestCreateVocabularyEnrichesMissingFields(t *testing.T) {
	dict := &fakeDictionary{entries: map[string]Pronunciation{
		"bread": {Phonetic: "/bred/", AudioURL: "bread.mp3"},
	}}
	svc, lesson := newVocabularyService(t, dict)
	ctx := context.Background()

	word, err := svc.CreateVocabulary(ctx, VocabularyReq{LessonID: &lesson.ID, Word: strPtr(" bread "), Meaning: strPtr("banh mi")})
	require.NoError(t, err)
	assert.Equal(t, "bread", word.Word)
	assert.Equal(t, "/bred/", word.Phonetic)
	assert.Equal(t, "bread.mp3", word.AudioURL)

	// a given phonetic is kept, only the audio is filled
	word, err = svc.CreateVocabulary(ctx, VocabularyReq{LessonID: &lesson.ID, Word: strPtr("bread"), Meaning: strPtr("bread"), Phonetic: strPtr("/brɛd/")})
	require.NoError(t, err)
	assert.Equal(t, "/brɛd/", word.Phonetic)
	assert.Equal(t, "bread.mp3", word.AudioURL)

	// nothing to fill, no lookup
	_, err = svc.CreateVocabulary(ctx, VocabularyReq{LessonID: &lesson.ID, Word: strPtr("milk"), Meaning: strPtr("sua"), Phonetic: strPtr("/mɪlk/"), AudioURL: strPtr("milk.mp3")})
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "bread"}, dict.calls)
}

func TestCreateVocabularyIgnoresLookupFailure(t *testing.T) {
	svc, lesson := newVocabularyService(t, &fakeDictionary{err: errors.New("timeout")})

	word, err := svc.CreateVocabulary(context.Background(), VocabularyReq{LessonID: &lesson.ID, Word: strPtr("egg"), Meaning: strPtr("trung")})
	require.NoError(t, err)
	assert.Empty(t, word.Phonetic)
	assert.NotZero(t, word.ID)
}

func TestCreateVocabularyValidation(t *testing.T) {
	svc, lesson := newVocabularyService(t, nil)
	ctx := context.Background()
	missing := uint(9999)

	_, err := svc.CreateVocabulary(ctx, VocabularyReq{LessonID: &lesson.ID, Word: strPtr("  "), Meaning: strPtr("x")})
	assert.ErrorIs(t, err, util.ErrMissingFields)
	_, err = svc.CreateVocabulary(ctx, VocabularyReq{Word: strPtr("tea"), Meaning: strPtr("tra")})
	assert.ErrorIs(t, err, util.ErrMissingFields)
	_, err = svc.CreateVocabulary(ctx, VocabularyReq{LessonID: &missing, Word: strPtr("tea"), Meaning: strPtr("tra")})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCreateBulkIsAllOrNothing(t *testing.T) {
	svc, lesson := newVocabularyService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateBulk(ctx, BulkVocabularyReq{LessonID: lesson.ID, Vocabularies: []BulkVocabularyItem{
		{Word: "rice", Meaning: "com"},
		{Word: "soup"},
	}})
	assert.ErrorIs(t, err, util.ErrMissingFields)

	words, err := svc.ListByLesson(lesson.ID)
	require.NoError(t, err)
	assert.Empty(t, words)

	count, err := svc.CreateBulk(ctx, BulkVocabularyReq{LessonID: lesson.ID, Vocabularies: []BulkVocabularyItem{
		{Word: "rice", Meaning: "com"},
		{Word: "soup", Meaning: "canh"},
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	words, err = svc.ListVocabularies(nil)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "soup", words[0].Word)
	assert.Equal(t, lesson.Title, words[0].LessonTitle)
}

func TestImportCSV(t *testing.T) {
	svc, lesson := newVocabularyService(t, nil)

	csv := "word,meaning,phonetic\ncoffee,ca phe,/ˈkɒf.i/\n,no word\njuice,nuoc ep\n"
	result, err := svc.Import(context.Background(), lesson.ID, "menu.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, int64(2), result.Created)
	assert.Equal(t, 1, result.Skipped)

	_, err = svc.Import(context.Background(), lesson.ID, "menu.pdf", strings.NewReader(csv))
	assert.ErrorIs(t, err, util.ErrUnsupportedMediaType)
}

func TestUpdateAndDeleteVocabulary(t *testing.T) {
	svc, lesson := newVocabularyService(t, nil)
	ctx := context.Background()

	word, err := svc.CreateVocabulary(ctx, VocabularyReq{LessonID: &lesson.ID, Word: strPtr("butter"), Meaning: strPtr("bo")})
	require.NoError(t, err)

	updated, err := svc.UpdateVocabulary(word.ID, VocabularyReq{Meaning: strPtr("bo (butter)"), Word: strPtr("  ")})
	require.NoError(t, err)
	assert.Equal(t, "butter", updated.Word)
	assert.Equal(t, "bo (butter)", updated.Meaning)

	require.NoError(t, svc.DeleteVocabulary(word.ID))
	assert.ErrorIs(t, svc.DeleteVocabulary(word.ID), util.ErrVocabularyNotFound)
	_, err = svc.GetVocabulary(word.ID)
	assert.ErrorIs(t, err, util.ErrVocabularyNotFound)
}
