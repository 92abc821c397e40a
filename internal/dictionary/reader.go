// Package dictionary looks up pronunciations and definitions on WordsAPI.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/at-ishikawa/wordcoach/internal/dictionary/rapidapi"
	"github.com/go-resty/resty/v2"
)

var (
	ErrNotConfigured = errors.New("RAPID_API_HOST and RAPID_API_KEY are required for dictionary lookups")
	ErrInvalidWord   = errors.New("invalid word")
)

type Reader struct {
	config     Config
	fileCache  *FileCache
	httpClient *resty.Client
	baseURL    string
}

type Config struct {
	RapidAPIHost string
	RapidAPIKey  string
}

func (config Config) configured() bool {
	return config.RapidAPIHost != "" && config.RapidAPIKey != ""
}

func NewReader(cacheDirectory string, config Config) *Reader {
	return &Reader{
		config:     config,
		fileCache:  NewFileCache(cacheDirectory),
		httpClient: resty.New(),
		baseURL:    "https://" + config.RapidAPIHost,
	}
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	config := r.config
	if !config.configured() {
		return nil, ErrNotConfigured
	}

	res, err := r.httpClient.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-host", config.RapidAPIHost).
		SetHeader("x-rapidapi-key", config.RapidAPIKey).
		Get(fmt.Sprintf("%s/words/%s", r.baseURL, url.PathEscape(word)))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}

// Lookup returns the WordsAPI entry of expression, from the cache when it
// was looked up before.
func (r *Reader) Lookup(ctx context.Context, expression string) (rapidapi.Response, error) {
	var resp rapidapi.Response
	word := strings.ToLower(strings.TrimSpace(expression))
	if word == "" || strings.ContainsAny(word, `/\`) || strings.HasPrefix(word, ".") {
		return resp, fmt.Errorf("%w: %q", ErrInvalidWord, expression)
	}

	contents, err := r.fileCache.cache(word, func() ([]byte, error) {
		body, err := r.lookupAPI(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("r.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return resp, fmt.Errorf("r.fileCache.cache > %w", err)
	}
	if err := json.Unmarshal(contents, &resp); err != nil {
		return resp, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return resp, nil
}

// Pronunciation returns the IPA of word, or an empty string when the
// dictionary has none.
func (r *Reader) Pronunciation(ctx context.Context, word string) (string, error) {
	resp, err := r.Lookup(ctx, word)
	if err != nil {
		return "", err
	}
	if resp.Pronunciation.All == "" {
		slog.Default().Debug("No pronunciation in the dictionary", "word", word)
	}
	return resp.Pronunciation.All, nil
}
