package service

import (
	"encoding/csv"
	"english_app_backend/internal/model"
	"english_app_backend/internal/util"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet columns, in order: word, meaning, phonetic, audio_url. The first
// row is a header.
const (
	importColWord = iota
	importColMeaning
	importColPhonetic
	importColAudio
)

type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int64    `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

func readRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidSpreadsheet, err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, util.ErrInvalidSpreadsheet
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidSpreadsheet, err)
		}
		return rows, nil
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidSpreadsheet, err)
		}
		return rows, nil
	}
	return nil, util.ErrUnsupportedMediaType
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseVocabularyRows turns data rows into vocabulary entries. Rows without a
// word or a meaning are reported and skipped.
func parseVocabularyRows(lessonID uint, rows [][]string) ([]model.Vocabulary, *ImportResult) {
	result := &ImportResult{Errors: []string{}}
	words := make([]model.Vocabulary, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		word, meaning := cell(row, importColWord), cell(row, importColMeaning)
		if word == "" && meaning == "" && cell(row, importColPhonetic) == "" {
			continue
		}
		result.TotalProcessed++
		if word == "" || meaning == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: word and meaning are required", i+1))
			continue
		}
		words = append(words, model.Vocabulary{
			LessonID: lessonID,
			Word:     word,
			Meaning:  meaning,
			Phonetic: cell(row, importColPhonetic),
			AudioURL: cell(row, importColAudio),
		})
	}
	return words, result
}
