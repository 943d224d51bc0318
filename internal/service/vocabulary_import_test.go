package service

import (
	"bytes"
	"english_app_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseVocabularyRows(t *testing.T) {
	rows := [][]string{
		{"word", "meaning", "phonetic", "audio_url"},
		{"apple", "a fruit", "/ˈæp.əl/", "https://cdn.example.com/apple.mp3"},
		{"  pear ", " another fruit "},
		{"", "", ""},
		{"ghost"},
		{"", "meaning without word"},
	}

	words, result := parseVocabularyRows(7, rows)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, "https://cdn.example.com/apple.mp3", words[0].AudioURL)
	assert.Equal(t, "pear", words[1].Word)
	assert.Equal(t, "another fruit", words[1].Meaning)
	assert.Equal(t, uint(7), words[1].LessonID)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, []string{
		"Row 5: word and meaning are required",
		"Row 6: word and meaning are required",
	}, result.Errors)
}

func TestReadRowsCSV(t *testing.T) {
	rows, err := readRows("words.CSV", strings.NewReader("word,meaning\nhello,xin chao\nbye,tam biet,extra\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"bye", "tam biet", "extra"}, rows[2])
}

func TestReadRowsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"word", "meaning", "phonetic"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"book", "a thing to read", "/bʊk/"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := readRows("import.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"book", "a thing to read", "/bʊk/"}, rows[1])
}

func TestReadRowsRejectsInput(t *testing.T) {
	_, err := readRows("words.txt", strings.NewReader("hello"))
	assert.ErrorIs(t, err, util.ErrUnsupportedMediaType)

	_, err = readRows("broken.xlsx", strings.NewReader("not a zip"))
	assert.ErrorIs(t, err, util.ErrInvalidSpreadsheet)
}
