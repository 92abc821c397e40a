package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/at-ishikawa/wordcoach/internal/dictionary"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
)

type PronunciationReader interface {
	Pronunciation(ctx context.Context, word string) (string, error)
}

type VocabularyHandler struct {
	catalog       *vocabulary.Catalog
	pronunciation PronunciationReader
	validator     *requestValidator
}

func NewVocabularyHandler(catalog *vocabulary.Catalog, pronunciation PronunciationReader) (*VocabularyHandler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator > %w", err)
	}
	return &VocabularyHandler{
		catalog:       catalog,
		pronunciation: pronunciation,
		validator:     v,
	}, nil
}

func (h *VocabularyHandler) ListCategories(
	_ context.Context,
	_ *connect.Request[ListCategoriesRequest],
) (*connect.Response[ListCategoriesResponse], error) {
	return connect.NewResponse(&ListCategoriesResponse{
		Categories: h.catalog.Categories(),
	}), nil
}

// GetWord returns a word with its pronunciation. A failed dictionary lookup
// leaves the pronunciation empty instead of failing the request.
func (h *VocabularyHandler) GetWord(
	ctx context.Context,
	req *connect.Request[GetWordRequest],
) (*connect.Response[GetWordResponse], error) {
	if err := h.validator.validateRequest(req.Msg); err != nil {
		return nil, err
	}

	word, err := h.catalog.Word(req.Msg.Category, req.Msg.Word)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	pronunciation, err := h.pronunciation.Pronunciation(ctx, word.English)
	if err != nil && !errors.Is(err, dictionary.ErrNotConfigured) {
		slog.Default().Warn("Failed to look up the pronunciation", "word", word.English, "error", err)
	}
	return connect.NewResponse(&GetWordResponse{
		Word:          word,
		Pronunciation: pronunciation,
	}), nil
}
