package service

import (
	"context"
	"english_app_backend/internal/config"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

type dictionaryPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type dictionaryEntry struct {
	Word      string               `json:"word"`
	Phonetic  string               `json:"phonetic"`
	Phonetics []dictionaryPhonetic `json:"phonetics"`
}

// Pronunciation is what the dictionary knows about how a word sounds.
type Pronunciation struct {
	Phonetic string
	AudioURL string
}

// Dictionary looks up pronunciations. A word the dictionary does not know
// yields an empty Pronunciation and no error.
type Dictionary interface {
	Lookup(ctx context.Context, word string) (Pronunciation, error)
}

type DictionaryClient struct {
	client *resty.Client
}

func NewDictionaryClient(cfg *config.DictionaryConfig) *DictionaryClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &DictionaryClient{client: client}
}

func (d *DictionaryClient) Lookup(ctx context.Context, word string) (Pronunciation, error) {
	var entries []dictionaryEntry
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&entries).
		Get("/" + url.PathEscape(strings.ToLower(strings.TrimSpace(word))))
	if err != nil {
		return Pronunciation{}, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return Pronunciation{}, nil
	}
	if resp.IsError() {
		return Pronunciation{}, fmt.Errorf("dictionary lookup for %q: status %d", word, resp.StatusCode())
	}
	if len(entries) == 0 {
		return Pronunciation{}, nil
	}
	return pronunciationOf(entries[0]), nil
}

// pronunciationOf prefers the entry's own phonetic, then the first phonetic
// variant with text. Audio is the first non-empty recording.
func pronunciationOf(e dictionaryEntry) Pronunciation {
	p := Pronunciation{Phonetic: e.Phonetic}
	for _, ph := range e.Phonetics {
		if p.Phonetic == "" && ph.Text != "" {
			p.Phonetic = ph.Text
		}
		if p.AudioURL == "" && ph.Audio != "" {
			p.AudioURL = ph.Audio
		}
	}
	return p
}
