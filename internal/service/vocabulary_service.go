package service

import (
	"context"
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/util"
	"english_app_backend/pkg/logger"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

type VocabularyReq struct {
	LessonID *uint   `json:"lesson_id"`
	Word     *string `json:"word"`
	Meaning  *string `json:"meaning"`
	Phonetic *string `json:"phonetic"`
	AudioURL *string `json:"audio_url"`
}

type BulkVocabularyItem struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Phonetic string `json:"phonetic"`
	AudioURL string `json:"audio_url"`
}

type BulkVocabularyReq struct {
	LessonID     uint                 `json:"lesson_id"`
	Vocabularies []BulkVocabularyItem `json:"vocabularies"`
}

type VocabularyService struct {
	VocabRepo  *repository.VocabularyRepository
	LessonRepo *repository.LessonRepository
	// Dictionary is nil when enrichment is disabled.
	Dictionary Dictionary
}

func NewVocabularyService(vocabRepo *repository.VocabularyRepository, lessonRepo *repository.LessonRepository, dictionary Dictionary) *VocabularyService {
	return &VocabularyService{
		VocabRepo:  vocabRepo,
		LessonRepo: lessonRepo,
		Dictionary: dictionary,
	}
}

func (s *VocabularyService) requireLesson(lessonID uint) error {
	ok, err := s.LessonRepo.Exists(lessonID)
	if err != nil {
		return fmt.Errorf("check lesson: %w", err)
	}
	if !ok {
		return util.ErrLessonNotFound
	}
	return nil
}

// enrich fills a missing phonetic or audio URL from the dictionary. Lookup
// failures are logged and ignored.
func (s *VocabularyService) enrich(ctx context.Context, word *model.Vocabulary) {
	if s.Dictionary == nil || (word.Phonetic != "" && word.AudioURL != "") {
		return
	}
	p, err := s.Dictionary.Lookup(ctx, word.Word)
	if err != nil {
		logger.Log.Warn("Dictionary lookup failed", zap.String("word", word.Word), zap.Error(err))
		return
	}
	if word.Phonetic == "" {
		word.Phonetic = p.Phonetic
	}
	if word.AudioURL == "" {
		word.AudioURL = p.AudioURL
	}
}

func (s *VocabularyService) ListVocabularies(lessonID *uint) ([]model.Vocabulary, error) {
	if lessonID != nil {
		return s.VocabRepo.FindByLessonID(*lessonID)
	}
	return s.VocabRepo.FindAll()
}

func (s *VocabularyService) ListByLesson(lessonID uint) ([]model.Vocabulary, error) {
	if err := s.requireLesson(lessonID); err != nil {
		return nil, err
	}
	return s.VocabRepo.FindByLessonID(lessonID)
}

func (s *VocabularyService) GetVocabulary(id uint) (*model.Vocabulary, error) {
	word, err := s.VocabRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return word, nil
}

func (s *VocabularyService) CreateVocabulary(ctx context.Context, req VocabularyReq) (*model.Vocabulary, error) {
	if req.LessonID == nil || *req.LessonID == 0 ||
		req.Word == nil || strings.TrimSpace(*req.Word) == "" ||
		req.Meaning == nil || strings.TrimSpace(*req.Meaning) == "" {
		return nil, util.ErrMissingFields
	}
	if err := s.requireLesson(*req.LessonID); err != nil {
		return nil, err
	}

	word := &model.Vocabulary{
		LessonID: *req.LessonID,
		Word:     strings.TrimSpace(*req.Word),
		Meaning:  strings.TrimSpace(*req.Meaning),
	}
	if req.Phonetic != nil {
		word.Phonetic = *req.Phonetic
	}
	if req.AudioURL != nil {
		word.AudioURL = *req.AudioURL
	}
	s.enrich(ctx, word)

	if err := s.VocabRepo.Create(word); err != nil {
		return nil, fmt.Errorf("create vocabulary: %w", err)
	}
	return word, nil
}

// CreateBulk validates every entry before inserting any.
func (s *VocabularyService) CreateBulk(ctx context.Context, req BulkVocabularyReq) (int64, error) {
	if req.LessonID == 0 || len(req.Vocabularies) == 0 {
		return 0, util.ErrMissingFields
	}
	for _, item := range req.Vocabularies {
		if strings.TrimSpace(item.Word) == "" || strings.TrimSpace(item.Meaning) == "" {
			return 0, util.ErrMissingFields
		}
	}
	if err := s.requireLesson(req.LessonID); err != nil {
		return 0, err
	}

	words := make([]model.Vocabulary, 0, len(req.Vocabularies))
	for _, item := range req.Vocabularies {
		word := model.Vocabulary{
			LessonID: req.LessonID,
			Word:     strings.TrimSpace(item.Word),
			Meaning:  strings.TrimSpace(item.Meaning),
			Phonetic: item.Phonetic,
			AudioURL: item.AudioURL,
		}
		s.enrich(ctx, &word)
		words = append(words, word)
	}

	count, err := s.VocabRepo.CreateBatch(words)
	if err != nil {
		return 0, fmt.Errorf("create vocabularies: %w", err)
	}
	return count, nil
}

// Import reads a .xlsx or .csv sheet and inserts its valid rows in one batch.
func (s *VocabularyService) Import(ctx context.Context, lessonID uint, filename string, r io.Reader) (*ImportResult, error) {
	if err := s.requireLesson(lessonID); err != nil {
		return nil, err
	}
	rows, err := readRows(filename, r)
	if err != nil {
		return nil, err
	}

	words, result := parseVocabularyRows(lessonID, rows)
	for i := range words {
		s.enrich(ctx, &words[i])
	}
	created, err := s.VocabRepo.CreateBatch(words)
	if err != nil {
		return nil, fmt.Errorf("import vocabularies: %w", err)
	}
	result.Created = created
	return result, nil
}

func (s *VocabularyService) UpdateVocabulary(id uint, req VocabularyReq) (*model.Vocabulary, error) {
	word, err := s.GetVocabulary(id)
	if err != nil {
		return nil, err
	}
	if req.LessonID != nil && *req.LessonID != 0 {
		if err := s.requireLesson(*req.LessonID); err != nil {
			return nil, err
		}
		word.LessonID = *req.LessonID
	}
	if req.Word != nil && strings.TrimSpace(*req.Word) != "" {
		word.Word = strings.TrimSpace(*req.Word)
	}
	if req.Meaning != nil && strings.TrimSpace(*req.Meaning) != "" {
		word.Meaning = strings.TrimSpace(*req.Meaning)
	}
	if req.Phonetic != nil {
		word.Phonetic = *req.Phonetic
	}
	if req.AudioURL != nil {
		word.AudioURL = *req.AudioURL
	}
	if err := s.VocabRepo.Update(word); err != nil {
		return nil, fmt.Errorf("update vocabulary: %w", err)
	}
	return word, nil
}

func (s *VocabularyService) DeleteVocabulary(id uint) error {
	deleted, err := s.VocabRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("delete vocabulary: %w", err)
	}
	if !deleted {
		return util.ErrVocabularyNotFound
	}
	return nil
}
