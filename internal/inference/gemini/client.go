// Package gemini opens assistant sessions on Google's Gemini chat API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("gemini returned no text")

// Client starts chat sessions on a single configured model.
type Client struct {
	genaiClient *genai.Client
	model       *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*Client, error) {
	clientOptions := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	genaiClient, err := genai.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient > %w", err)
	}

	return &Client{
		genaiClient: genaiClient,
		model:       newModel(genaiClient, modelName, assistant.DefaultGenerationConfig),
	}, nil
}

func newModel(genaiClient *genai.Client, name string, config assistant.GenerationConfig) *genai.GenerativeModel {
	model := genaiClient.GenerativeModel(name)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(assistant.SystemInstruction)},
	}
	model.SetTemperature(config.Temperature)
	model.SetTopP(config.TopP)
	model.SetTopK(config.TopK)
	model.SetMaxOutputTokens(config.MaxOutputTokens)
	model.ResponseMIMEType = config.ResponseMIMEType
	return model
}

func (client *Client) Close() error {
	return client.genaiClient.Close()
}

// StartSession opens a chat with an empty history. No request is made until
// the first Send.
func (client *Client) StartSession(_ context.Context) (assistant.Session, error) {
	chat := client.model.StartChat()
	chat.History = []*genai.Content{}

	session := &Session{
		id:   uuid.NewString(),
		chat: chat,
	}
	slog.Default().Debug("Started a gemini chat session", "session_id", session.id)
	return session, nil
}

// Session is one Gemini chat. The chat history grows with every Send, so
// sends are serialized.
type Session struct {
	id string

	mu   sync.Mutex
	chat *genai.ChatSession
}

func (session *Session) ID() string {
	return session.id
}

func (session *Session) Send(ctx context.Context, text string, attachments ...assistant.Attachment) (string, error) {
	parts := make([]genai.Part, 0, len(attachments)+1)
	parts = append(parts, genai.Text(text))
	for _, attachment := range attachments {
		parts = append(parts, genai.Blob{
			MIMEType: attachment.MIMEType,
			Data:     attachment.Data,
		})
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	response, err := session.chat.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("chat.SendMessage > %w", err)
	}
	return responseText(response)
}

// responseText joins the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, candidate.FinishReason)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, candidate.FinishReason)
	}
	return text.String(), nil
}
