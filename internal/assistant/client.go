package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wordcoach/internal/audio"
)

// AudioMIMEType is the content type recordings are attached with.
const AudioMIMEType = "audio/wav"

// Client builds task requests, sends them through a session and decodes the
// first element of the model's JSON answer.
//
// Example generation and audio feedback go through the shared session.
// Text feedback uses a fresh session unless configured otherwise.
type Client struct {
	sessions             SessionProvider
	files                audio.FileReader
	textFeedbackStrategy SessionStrategy
}

var _ Assistant = (*Client)(nil)

type Option func(*Client)

func WithTextFeedbackStrategy(strategy SessionStrategy) Option {
	return func(c *Client) {
		c.textFeedbackStrategy = strategy
	}
}

func NewClient(sessions SessionProvider, files audio.FileReader, options ...Option) *Client {
	client := &Client{
		sessions:             sessions,
		files:                files,
		textFeedbackStrategy: StrategyFresh,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func (c *Client) GetSentenceExample(ctx context.Context, word string) (*ExampleResult, error) {
	request, err := BuildExampleRequest(word)
	if err != nil {
		return nil, err
	}
	result, err := exchange[ExampleResult](ctx, c.sessions, StrategyShared, request)
	if err != nil {
		return nil, fmt.Errorf("GetSentenceExample(%s) > %w", word, err)
	}
	return result, nil
}

func (c *Client) GetFeedback(ctx context.Context, word, userText string) (*FeedbackResult, error) {
	request, err := BuildFeedbackRequest(word, userText)
	if err != nil {
		return nil, err
	}
	result, err := exchange[FeedbackResult](ctx, c.sessions, c.textFeedbackStrategy, request)
	if err == nil {
		err = checkVerdict(result)
	}
	if err != nil {
		return nil, fmt.Errorf("GetFeedback(%s) > %w", word, err)
	}
	return result, nil
}

func (c *Client) GetFeedbackFromAudio(ctx context.Context, word string, ref audio.FileRef) (*FeedbackResult, error) {
	request, err := BuildAudioFeedbackRequest(word)
	if err != nil {
		return nil, err
	}
	if c.files == nil {
		return nil, errors.New("no audio file reader configured")
	}

	data, err := c.files.Read(ref)
	if err != nil {
		slog.Default().Error("Failed to read the recording",
			"word", word,
			"path", ref.Path,
			"error", err)
		return nil, fmt.Errorf("files.Read(%s) > %w", ref.Path, err)
	}

	result, err := exchange[FeedbackResult](ctx, c.sessions, StrategyShared, request, Attachment{
		MIMEType: AudioMIMEType,
		Data:     data,
	})
	if err == nil {
		err = checkVerdict(result)
	}
	if err != nil {
		return nil, fmt.Errorf("GetFeedbackFromAudio(%s) > %w", word, err)
	}
	return result, nil
}

func checkVerdict(result *FeedbackResult) error {
	if result.Pass.Valid() {
		return nil
	}
	slog.Default().Warn("Unexpected verdict in the assistant response", "pass", result.Pass)
	return fmt.Errorf("%w: %q", ErrInvalidVerdict, result.Pass)
}

func exchange[T any](
	ctx context.Context,
	sessions SessionProvider,
	strategy SessionStrategy,
	request Request,
	attachments ...Attachment,
) (*T, error) {
	session, err := sessions.Session(ctx, strategy)
	if err != nil {
		return nil, fmt.Errorf("sessions.Session(%s) > %w", strategy, err)
	}

	payload, err := request.Payload()
	if err != nil {
		return nil, fmt.Errorf("request.Payload > %w", err)
	}

	raw, err := session.Send(ctx, payload, attachments...)
	if err != nil {
		slog.Default().Error("Failed to send a message to the assistant",
			"task", request.Task,
			"word", request.CurrentWord,
			"session_id", session.ID(),
			"error", err)
		return nil, fmt.Errorf("session.Send > %w", err)
	}
	slog.Default().Debug("assistant response",
		"task", request.Task,
		"word", request.CurrentWord,
		"session_id", session.ID(),
		"response", raw)

	result, err := ExtractFirst[T](raw)
	if err != nil {
		slog.Default().Warn("No structured result in the assistant response",
			"task", request.Task,
			"word", request.CurrentWord,
			"session_id", session.ID(),
			"error", err)
		return nil, err
	}
	return &result, nil
}
