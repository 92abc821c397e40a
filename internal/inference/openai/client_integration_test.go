package openai_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/inference/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires OPENAI_API_KEY environment variable to be set
// Run with: OPENAI_API_KEY=your-key go test -v ./internal/inference/openai -run TestIntegration
func TestIntegration_FeedbackClient(t *testing.T) {
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})),
	)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY environment variable not set, skipping integration test")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-audio-preview"
	}

	client := openai.NewClient(apiKey, model)
	manager := assistant.NewSessionManager(client)
	defer func() {
		_ = manager.Close()
	}()
	feedbackClient := assistant.NewClient(manager, audio.NewFileStore())

	tests := []struct {
		name     string
		word     string
		sentence string
		wantPass assistant.Verdict
	}{
		{name: "well formed sentence", word: "bread", sentence: "I buy fresh bread every morning.", wantPass: assistant.VerdictGood},
		{name: "sentence in spanish", word: "bread", sentence: "Yo como pan.", wantPass: assistant.VerdictBad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := feedbackClient.GetFeedback(ctx, tt.word, tt.sentence)
			require.NoError(t, err)
			t.Logf("Feedback: %s", result.Feedback)
			assert.Equal(t, tt.wantPass, result.Pass)
		})
	}
}
