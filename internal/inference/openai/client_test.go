package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

type recordedRequest struct {
	Model               string           `json:"model"`
	Messages            []map[string]any `json:"messages"`
	Temperature         float32          `json:"temperature"`
	TopP                float32          `json:"top_p"`
	MaxCompletionTokens int32            `json:"max_completion_tokens"`
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *Client {
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)

	return &Client{
		httpClient: resty.New().SetBaseURL(server.URL),
		model:      "gpt-4o-audio-preview",
		config:     assistant.DefaultGenerationConfig,
	}
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	require.NoError(t, json.NewEncoder(w).Encode(ChatCompletionResponse{
		ID:    "chatcmpl-123",
		Model: "gpt-4o-audio-preview",
		Choices: []Choice{
			{
				Message:      ChoiceMessage{Role: RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
	}))
}

func TestSession_Send(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var body recordedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)

		if len(requests) == 1 {
			writeCompletion(t, w, `[{"ExampleEng":"I like cats.","ExampleSpa":"Me gustan los gatos.","SentenceHelp":"Tu mascota"}]`)
			return
		}
		writeCompletion(t, w, `[{"feedback":"¡Bien!","pass":"good"}]`)
	})

	session, err := client.StartSession(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID())

	got, err := session.Send(context.Background(), `[{"Task":"Task1","Current word":"cat","User output":""}]`)
	require.NoError(t, err)
	assert.Equal(t, `[{"ExampleEng":"I like cats.","ExampleSpa":"Me gustan los gatos.","SentenceHelp":"Tu mascota"}]`, got)

	got, err = session.Send(
		context.Background(),
		`[{"Task":"Task2","Current word":"cat","User output":""}]`,
		assistant.Attachment{MIMEType: "audio/wav", Data: []byte("RIFF")},
	)
	require.NoError(t, err)
	assert.Equal(t, `[{"feedback":"¡Bien!","pass":"good"}]`, got)

	require.Len(t, requests, 2)
	first := requests[0]
	assert.Equal(t, "gpt-4o-audio-preview", first.Model)
	assert.Equal(t, float32(1), first.Temperature)
	assert.Equal(t, float32(0.95), first.TopP)
	assert.Equal(t, int32(8192), first.MaxCompletionTokens)
	require.Len(t, first.Messages, 2)
	assert.Equal(t, "system", first.Messages[0]["role"])
	assert.Equal(t, assistant.SystemInstruction, first.Messages[0]["content"])
	assert.Equal(t, "user", first.Messages[1]["role"])
	assert.Equal(t, `[{"Task":"Task1","Current word":"cat","User output":""}]`, first.Messages[1]["content"])

	// The second request carries the first exchange.
	second := requests[1]
	require.Len(t, second.Messages, 4)
	assert.Equal(t, "assistant", second.Messages[2]["role"])
	assert.Equal(t, []any{
		map[string]any{"type": "text", "text": `[{"Task":"Task2","Current word":"cat","User output":""}]`},
		map[string]any{"type": "input_audio", "input_audio": map[string]any{"data": "UklGRg==", "format": "wav"}},
	}, second.Messages[3]["content"])
}

func TestSession_Send_Errors(t *testing.T) {
	tests := []struct {
		name            string
		handler         func(t *testing.T, w http.ResponseWriter, r *http.Request)
		attachments     []assistant.Attachment
		wantErrIs       error
		wantErrorString string
	}{
		{
			name: "HTTP 500 error",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error": {"message": "Internal server error"}}`))
			},
			wantErrorString: "response error 500",
		},
		{
			name: "no choices",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"chatcmpl-1","choices":[]}`))
			},
			wantErrIs: ErrEmptyResponse,
		},
		{
			name: "empty content",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeCompletion(t, w, "")
			},
			wantErrIs: ErrEmptyResponse,
		},
		{
			name: "unsupported attachment is rejected before the request",
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				t.Error("HTTP request should not be made for an unsupported attachment")
			},
			attachments: []assistant.Attachment{{MIMEType: "image/png", Data: []byte("png")}},
			wantErrIs:   ErrUnsupportedAttachment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, w, r)
			})
			session, err := client.StartSession(context.Background())
			require.NoError(t, err)

			got, err := session.Send(context.Background(), `[{"Task":"Task1","Current word":"dog","User output":""}]`, tt.attachments...)

			require.Error(t, err)
			assert.Empty(t, got)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}
			if tt.wantErrorString != "" {
				assert.Contains(t, err.Error(), tt.wantErrorString)
			}
			assert.Len(t, session.(*Session).history, 1, "a failed turn must not be kept")
		})
	}
}
