// Package assistant talks to a conversational language model to generate
// example sentences for a vocabulary word and to grade the learner's own
// sentences, typed or spoken.
package assistant

import (
	"context"

	"github.com/at-ishikawa/wordcoach/internal/audio"
)

//go:generate mockgen -source=interface.go -destination=../mocks/assistant/mock_assistant.go -package=mock_assistant

// Assistant is what the CLI and the server depend on.
type Assistant interface {
	GetSentenceExample(ctx context.Context, word string) (*ExampleResult, error)
	GetFeedback(ctx context.Context, word, userText string) (*FeedbackResult, error)
	GetFeedbackFromAudio(ctx context.Context, word string, ref audio.FileRef) (*FeedbackResult, error)
}

// Session is a multi-turn exchange with the model. History is kept by the
// provider, so every Send is a new turn of the same conversation.
type Session interface {
	ID() string
	Send(ctx context.Context, text string, attachments ...Attachment) (string, error)
}

// Starter opens new sessions with the fixed generation settings and an
// empty history.
type Starter interface {
	StartSession(ctx context.Context) (Session, error)
}

// SessionProvider hands out sessions following the requested strategy.
type SessionProvider interface {
	Session(ctx context.Context, strategy SessionStrategy) (Session, error)
}

// Attachment is binary content sent in the same message as the text part.
type Attachment struct {
	MIMEType string
	Data     []byte
}
