package server

import (
	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
)

// Uploaded recordings are limited to 10 MiB.
const maxAudioBytes = 10 << 20

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []vocabulary.Category `json:"categories"`
}

type GetWordRequest struct {
	Category string `json:"category" validate:"required"`
	Word     string `json:"word" validate:"required"`
}

type GetWordResponse struct {
	Word vocabulary.Word `json:"word"`
	// Pronunciation is the IPA, empty when the dictionary has none.
	Pronunciation string `json:"pronunciation,omitempty"`
}

type GetSentenceExampleRequest struct {
	Category string `json:"category,omitempty"`
	Word     string `json:"word" validate:"required,max=64"`
}

// Found is false when the model answered but nothing could be read from it.
type GetSentenceExampleResponse struct {
	Found   bool                     `json:"found"`
	Example *assistant.ExampleResult `json:"example,omitempty"`
}

type GetFeedbackRequest struct {
	Category string `json:"category,omitempty"`
	Word     string `json:"word" validate:"required,max=64"`
	Sentence string `json:"sentence" validate:"required,max=1000"`
}

type GetFeedbackFromAudioRequest struct {
	Category string `json:"category,omitempty"`
	Word     string `json:"word" validate:"required,max=64"`
	// Audio is a WAV recording, base64 encoded in JSON.
	Audio []byte `json:"audio" validate:"required,max=10485760"`
}

type GetFeedbackResponse struct {
	Found    bool                      `json:"found"`
	Feedback *assistant.FeedbackResult `json:"feedback,omitempty"`
}
