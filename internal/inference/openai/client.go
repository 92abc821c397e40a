package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/google/uuid"
	"resty.dev/v3"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	chatCompletionsPath = "/chat/completions"
)

var (
	ErrEmptyResponse         = errors.New("openai returned no content")
	ErrUnsupportedAttachment = errors.New("unsupported attachment type")
)

// input_audio accepts wav and mp3 only.
var audioFormats = map[string]string{
	"audio/wav":   "wav",
	"audio/x-wav": "wav",
	"audio/mpeg":  "mp3",
	"audio/mp3":   "mp3",
}

type Client struct {
	httpClient *resty.Client
	model      string
	config     assistant.GenerationConfig
}

func NewClient(apiKey, model string) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		model:      model,
		config:     assistant.DefaultGenerationConfig,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type ChatCompletionRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	Modalities          []string  `json:"modalities,omitempty"`
	Temperature         float32   `json:"temperature,omitempty"`
	TopP                float32   `json:"top_p,omitempty"`
	MaxCompletionTokens int32     `json:"max_completion_tokens,omitempty"`
}

// Message content is either a plain string or a list of ContentPart.
type Message struct {
	Role    Role `json:"role"`
	Content any  `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ContentPart struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	InputAudio *InputAudio `json:"input_audio,omitempty"`
}

type InputAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// StartSession opens a conversation seeded with the system instruction.
// Chat completions are stateless, so the session keeps the history itself.
func (client *Client) StartSession(_ context.Context) (assistant.Session, error) {
	session := &Session{
		id:     uuid.NewString(),
		client: client,
		history: []Message{
			{Role: RoleSystem, Content: assistant.SystemInstruction},
		},
	}
	slog.Default().Debug("Started an openai chat session", "session_id", session.id, "model", client.model)
	return session, nil
}

type Session struct {
	id     string
	client *Client

	mu      sync.Mutex
	history []Message
}

func (session *Session) ID() string {
	return session.id
}

// Send appends the turn to the history only when the model answered.
func (session *Session) Send(ctx context.Context, text string, attachments ...assistant.Attachment) (string, error) {
	userMessage, err := newUserMessage(text, attachments)
	if err != nil {
		return "", err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	messages := make([]Message, 0, len(session.history)+1)
	messages = append(messages, session.history...)
	messages = append(messages, userMessage)

	content, err := session.client.complete(ctx, messages)
	if err != nil {
		return "", err
	}
	session.history = append(messages, Message{Role: RoleAssistant, Content: content})
	return content, nil
}

func newUserMessage(text string, attachments []assistant.Attachment) (Message, error) {
	if len(attachments) == 0 {
		return Message{Role: RoleUser, Content: text}, nil
	}

	parts := []ContentPart{{Type: "text", Text: text}}
	for _, attachment := range attachments {
		format, ok := audioFormats[attachment.MIMEType]
		if !ok {
			return Message{}, fmt.Errorf("%w: %s", ErrUnsupportedAttachment, attachment.MIMEType)
		}
		parts = append(parts, ContentPart{
			Type: "input_audio",
			InputAudio: &InputAudio{
				Data:   base64.StdEncoding.EncodeToString(attachment.Data),
				Format: format,
			},
		})
	}
	return Message{Role: RoleUser, Content: parts}, nil
}

func (client *Client) complete(ctx context.Context, messages []Message) (string, error) {
	requestBody := ChatCompletionRequest{
		Model:               client.model,
		Messages:            messages,
		Modalities:          []string{"text"},
		Temperature:         client.config.Temperature,
		TopP:                client.config.TopP,
		MaxCompletionTokens: client.config.MaxOutputTokens,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post(chatCompletionsPath)
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, response.String())
	}
	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, responseBody.Choices[0].FinishReason)
	}
	slog.Default().Debug("openai response content",
		"model", responseBody.Model,
		"usage", responseBody.Usage,
	)
	return content, nil
}
