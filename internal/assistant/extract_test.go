package assistant

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name                  string
		raw                   string
		want                  []map[string]any
		wantErrIs             error
		wantMalformedFragment string
	}{
		{
			name: "plain array",
			raw:  `[{"ExampleEng":"I eat an apple.","ExampleSpa":"Como una manzana.","SentenceHelp":"Tu desayuno"}]`,
			want: []map[string]any{
				{"ExampleEng": "I eat an apple.", "ExampleSpa": "Como una manzana.", "SentenceHelp": "Tu desayuno"},
			},
		},
		{
			name: "fenced array",
			raw:  "```json\n[{\"feedback\":\"Muy bien\",\"pass\":\"good\"}]\n```",
			want: []map[string]any{
				{"feedback": "Muy bien", "pass": "good"},
			},
		},
		{
			name: "fence without language tag",
			raw:  "```\n[{\"pass\":\"bad\"}]\n```",
			want: []map[string]any{
				{"pass": "bad"},
			},
		},
		{
			name: "trailing prose is discarded",
			raw:  "[{\"pass\":\"good\"}]\nEspero que esto te ayude. [nota]",
			want: []map[string]any{
				{"pass": "good"},
			},
		},
		{
			name: "nested array is kept whole",
			raw:  `[{"feedback":"ok","tips":["a","b"]}] and more]`,
			want: []map[string]any{
				{"feedback": "ok", "tips": []any{"a", "b"}},
			},
		},
		{
			name: "closing bracket inside a string value",
			raw:  `[{"feedback":"usa \"]\" con cuidado","pass":"bad"}]`,
			want: []map[string]any{
				{"feedback": `usa "]" con cuidado`, "pass": "bad"},
			},
		},
		{
			name:      "no brackets",
			raw:       "no brackets here",
			wantErrIs: ErrNoClosingBracket,
		},
		{
			name:      "array never closed",
			raw:       `[{"pass":"good"}`,
			wantErrIs: ErrNoClosingBracket,
		},
		{
			name:                  "invalid JSON before the bracket",
			raw:                   "{not json]",
			wantMalformedFragment: "{not json]",
		},
		{
			name:                  "prose before the array",
			raw:                   `Here you go: [{"pass":"good"}]`,
			wantMalformedFragment: `Here you go: [{"pass":"good"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.raw)

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.ErrorIs(t, err, ErrExtraction)
				assert.Nil(t, got)
				return
			}
			if tt.wantMalformedFragment != "" {
				require.Error(t, err)
				var malformed *MalformedJSONError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, tt.wantMalformedFragment, malformed.Fragment)
				assert.ErrorIs(t, err, ErrExtraction)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_FencedMatchesUnfenced(t *testing.T) {
	bodies := []string{
		`[{"ExampleEng":"The dog runs.","ExampleSpa":"El perro corre.","SentenceHelp":"Tu mascota"}]`,
		`[{"feedback":"Falta el artículo","pass":"bad"}] trailing`,
		"no brackets here",
		"{not json]",
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			want, wantErr := Extract(body)
			got, gotErr := Extract("```json\n" + body)

			assert.Equal(t, want, got)
			if wantErr == nil {
				assert.NoError(t, gotErr)
				return
			}
			require.Error(t, gotErr)
			assert.Equal(t, errors.Is(wantErr, ErrNoClosingBracket), errors.Is(gotErr, ErrNoClosingBracket))
		})
	}
}

func TestExtract_WellFormedArrayIsUnchanged(t *testing.T) {
	raw := `[{"feedback":"Bien","pass":"good"},{"feedback":"Mal","pass":"bad"}]`

	var want []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &want))

	got, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtract_RequestRoundTrip(t *testing.T) {
	request, err := BuildFeedbackRequest("apple", "I eat an apple")
	require.NoError(t, err)
	payload, err := request.Payload()
	require.NoError(t, err)

	got, err := Extract(payload)
	require.NoError(t, err)
	require.Len(t, got, 1)

	keys := make([]string, 0, len(got[0]))
	for key := range got[0] {
		keys = append(keys, key)
	}
	assert.ElementsMatch(t, []string{"Task", "Current word", "User output"}, keys)
}

func TestExtractFirst(t *testing.T) {
	t.Run("returns the first element", func(t *testing.T) {
		got, err := ExtractFirst[FeedbackResult]("```json\n[{\"feedback\":\"Muy bien\",\"pass\":\"good\"},{\"feedback\":\"x\",\"pass\":\"bad\"}]\n```")
		require.NoError(t, err)
		assert.Equal(t, FeedbackResult{Feedback: "Muy bien", Pass: VerdictGood}, got)
		assert.True(t, got.Passed())
	})

	t.Run("fields of the other task may be absent or empty", func(t *testing.T) {
		got, err := ExtractFirst[ExampleResult](`[{"ExampleEng":"A cat sleeps.","ExampleSpa":"Un gato duerme.","SentenceHelp":"","feedback":"","pass":""}]`)
		require.NoError(t, err)
		assert.Equal(t, ExampleResult{ExampleEng: "A cat sleeps.", ExampleSpa: "Un gato duerme."}, got)
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := ExtractFirst[FeedbackResult]("[]")
		assert.ErrorIs(t, err, ErrEmptyResult)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("wrong element type", func(t *testing.T) {
		_, err := ExtractFirst[FeedbackResult](`["just a string"]`)
		var malformed *MalformedJSONError
		assert.True(t, errors.As(err, &malformed))
	})
}

func TestStripOpeningFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "json fence", raw: "```json\n[1]", want: "[1]"},
		{name: "crlf fence", raw: "```json\r\n[1]", want: "[1]"},
		{name: "leading whitespace", raw: "\n  ```json\n[1]", want: "[1]"},
		{name: "no fence", raw: "[1]", want: "[1]"},
		{name: "fence without newline", raw: "```[1]", want: "```[1]"},
		{name: "fence followed by prose", raw: "```this is not a tag\n[1]", want: "```this is not a tag\n[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripOpeningFence(tt.raw))
		})
	}
}
