package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"connectrpc.com/connect"
	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
)

type AssistantHandler struct {
	assistant assistant.Assistant
	catalog   *vocabulary.Catalog
	uploadDir string
	validator *requestValidator
}

// NewAssistantHandler keeps uploaded recordings in uploadDir while they are
// evaluated; an empty uploadDir means the OS temp directory.
func NewAssistantHandler(assistantClient assistant.Assistant, catalog *vocabulary.Catalog, uploadDir string) (*AssistantHandler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator > %w", err)
	}
	return &AssistantHandler{
		assistant: assistantClient,
		catalog:   catalog,
		uploadDir: uploadDir,
		validator: v,
	}, nil
}

func (h *AssistantHandler) GetSentenceExample(
	ctx context.Context,
	req *connect.Request[GetSentenceExampleRequest],
) (*connect.Response[GetSentenceExampleResponse], error) {
	if err := h.validateWord(req.Msg, req.Msg.Category, req.Msg.Word); err != nil {
		return nil, err
	}

	example, err := h.assistant.GetSentenceExample(ctx, req.Msg.Word)
	if err != nil {
		if errors.Is(err, assistant.ErrExtraction) {
			return connect.NewResponse(&GetSentenceExampleResponse{Found: false}), nil
		}
		return nil, assistantError(err)
	}
	return connect.NewResponse(&GetSentenceExampleResponse{
		Found:   true,
		Example: example,
	}), nil
}

func (h *AssistantHandler) GetFeedback(
	ctx context.Context,
	req *connect.Request[GetFeedbackRequest],
) (*connect.Response[GetFeedbackResponse], error) {
	if err := h.validateWord(req.Msg, req.Msg.Category, req.Msg.Word); err != nil {
		return nil, err
	}

	feedback, err := h.assistant.GetFeedback(ctx, req.Msg.Word, req.Msg.Sentence)
	return feedbackResponse(feedback, err)
}

func (h *AssistantHandler) GetFeedbackFromAudio(
	ctx context.Context,
	req *connect.Request[GetFeedbackFromAudioRequest],
) (*connect.Response[GetFeedbackResponse], error) {
	if err := h.validateWord(req.Msg, req.Msg.Category, req.Msg.Word); err != nil {
		return nil, err
	}

	ref, err := h.saveUpload(req.Msg.Audio)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("save upload: %w", err))
	}
	defer func() {
		if err := os.Remove(ref.Path); err != nil {
			slog.Default().Warn("Failed to remove an uploaded recording", "path", ref.Path, "error", err)
		}
	}()

	feedback, err := h.assistant.GetFeedbackFromAudio(ctx, req.Msg.Word, ref)
	return feedbackResponse(feedback, err)
}

func (h *AssistantHandler) validateWord(msg any, category, word string) error {
	if err := h.validator.validateRequest(msg); err != nil {
		return err
	}
	if category == "" {
		return nil
	}
	if _, err := h.catalog.Word(category, word); err != nil {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return nil
}

func (h *AssistantHandler) saveUpload(data []byte) (audio.FileRef, error) {
	file, err := os.CreateTemp(h.uploadDir, "upload-*.wav")
	if err != nil {
		return audio.FileRef{}, fmt.Errorf("os.CreateTemp > %w", err)
	}
	ref := audio.FileRef{Path: file.Name()}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(ref.Path)
		return audio.FileRef{}, fmt.Errorf("file.Write > %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(ref.Path)
		return audio.FileRef{}, fmt.Errorf("file.Close > %w", err)
	}
	return ref, nil
}

func feedbackResponse(feedback *assistant.FeedbackResult, err error) (*connect.Response[GetFeedbackResponse], error) {
	if err != nil {
		if errors.Is(err, assistant.ErrExtraction) {
			return connect.NewResponse(&GetFeedbackResponse{Found: false}), nil
		}
		return nil, assistantError(err)
	}
	return connect.NewResponse(&GetFeedbackResponse{
		Found:    true,
		Feedback: feedback,
	}), nil
}

func assistantError(err error) *connect.Error {
	switch {
	case errors.Is(err, assistant.ErrEmptyWord), errors.Is(err, assistant.ErrEmptyUserOutput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, fmt.Errorf("assistant: %w", err))
}
