package service

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/repository"
	"english_app_backend/internal/util"
	"fmt"
)

type SavedVocabularyService struct {
	SavedRepo *repository.SavedVocabularyRepository
	VocabRepo *repository.VocabularyRepository
}

func NewSavedVocabularyService(savedRepo *repository.SavedVocabularyRepository, vocabRepo *repository.VocabularyRepository) *SavedVocabularyService {
	return &SavedVocabularyService{
		SavedRepo: savedRepo,
		VocabRepo: vocabRepo,
	}
}

func (s *SavedVocabularyService) ListSaved(userID uint) ([]repository.SavedVocabularyRow, error) {
	return s.SavedRepo.FindByUserID(userID)
}

func (s *SavedVocabularyService) ListSavedIDs(userID uint) ([]uint, error) {
	return s.SavedRepo.FindVocabularyIDs(userID)
}

func (s *SavedVocabularyService) IsSaved(userID, vocabularyID uint) (bool, error) {
	return s.SavedRepo.Exists(userID, vocabularyID)
}

func (s *SavedVocabularyService) Save(userID, vocabularyID uint) error {
	ok, err := s.VocabRepo.Exists(vocabularyID)
	if err != nil {
		return fmt.Errorf("check vocabulary: %w", err)
	}
	if !ok {
		return util.ErrVocabularyNotFound
	}

	saved, err := s.SavedRepo.Exists(userID, vocabularyID)
	if err != nil {
		return fmt.Errorf("check saved vocabulary: %w", err)
	}
	if saved {
		return util.ErrAlreadySaved
	}

	if err := s.SavedRepo.Create(&model.SavedVocabulary{UserID: userID, VocabularyID: vocabularyID}); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	return nil
}

func (s *SavedVocabularyService) Unsave(userID, vocabularyID uint) error {
	removed, err := s.SavedRepo.Delete(userID, vocabularyID)
	if err != nil {
		return fmt.Errorf("unsave vocabulary: %w", err)
	}
	if !removed {
		return util.ErrSavedNotFound
	}
	return nil
}

// Toggle flips the saved state and reports the new one.
func (s *SavedVocabularyService) Toggle(userID, vocabularyID uint) (bool, error) {
	saved, err := s.SavedRepo.Exists(userID, vocabularyID)
	if err != nil {
		return false, fmt.Errorf("check saved vocabulary: %w", err)
	}
	if saved {
		return false, s.Unsave(userID, vocabularyID)
	}
	if err := s.Save(userID, vocabularyID); err != nil {
		return false, err
	}
	return true, nil
}
