package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/dictionary"
	mock_assistant "github.com/at-ishikawa/wordcoach/internal/mocks/assistant"
	mock_audio "github.com/at-ishikawa/wordcoach/internal/mocks/audio"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakePronunciation map[string]string

func (f fakePronunciation) Pronunciation(_ context.Context, word string) (string, error) {
	ipa, ok := f[word]
	if !ok {
		return "", dictionary.ErrNotConfigured
	}
	return ipa, nil
}

var catExample = &assistant.ExampleResult{
	ExampleEng:   "The cat sleeps on the sofa.",
	ExampleSpa:   "El gato duerme en el sofá.",
	SentenceHelp: "Describe a tu mascota",
}

// runSessions drives the CLI until it ends, like Run does.
func runSessions(t *testing.T, cli *PracticeCLI) {
	t.Helper()
	for i := 0; i < 20; i++ {
		err := cli.Session(context.Background())
		if errors.Is(err, errEnd) {
			cli.Wait()
			return
		}
		require.NoError(t, err)
		// Keep the example output ahead of the next prompt.
		cli.Wait()
	}
	t.Fatal("the practice session did not end")
}

func newTestPracticeCLI(t *testing.T, input string, assistantClient assistant.Assistant, recorder audio.Recorder) (*PracticeCLI, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	catalog, err := vocabulary.Default()
	require.NoError(t, err)
	var stdout bytes.Buffer
	cli := NewPracticeCLI(
		catalog,
		assistantClient,
		recorder,
		fakePronunciation{"cat": "kæt"},
		strings.NewReader(input),
		&stdout,
	)
	return cli, &stdout
}

func TestPracticeCLI_TextFeedback(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		word          string
		feedback      *assistant.FeedbackResult
		feedbackErr   error
		wantOutput    []string
		notWantOutput []string
	}{
		{
			name:  "select by number and name",
			input: "2\ncat\nThe cat sleeps.\nquit\n",
			word:  "cat",
			feedback: &assistant.FeedbackResult{
				Feedback: "¡Muy bien! También puedes decir 'The cat is sleeping'.",
				Pass:     assistant.VerdictGood,
			},
			wantOutput: []string{
				"cat: gato",
				"Pronunciation: /kæt/",
				"Listen: assets/audios/animals/cat.mp3",
				"Example: The cat sleeps on the sofa.",
				"El gato duerme en el sofá.",
				`Your turn with "cat": Describe a tu mascota`,
				"✔ good ¡Muy bien! También puedes decir 'The cat is sleeping'.",
				"Practice session ended.",
			},
		},
		{
			name:  "invalid choices are asked again",
			input: "9\nVehicles\nanimales\n4\ngato\nThe cat sleeps.\n",
			word:  "cat",
			feedback: &assistant.FeedbackResult{
				Feedback: "Falta el artículo.",
				Pass:     assistant.VerdictBad,
			},
			wantOutput: []string{
				`"9" is not in the list.`,
				`"Vehicles" is not in the list.`,
				`"4" is not in the list.`,
				"✘ bad Falta el artículo.",
			},
		},
		{
			name:        "unreadable answer",
			input:       "2\ncat\nThe cat sleeps.\nquit\n",
			word:        "cat",
			feedbackErr: assistant.ErrNoClosingBracket,
			wantOutput: []string{
				"The assistant's answer could not be read. Please try again.",
			},
			notWantOutput: []string{"✔", "✘"},
		},
		{
			name:        "transport failure",
			input:       "2\ncat\nThe cat sleeps.\nquit\n",
			word:        "cat",
			feedbackErr: errors.New("quota exceeded"),
			wantOutput: []string{
				"The assistant is not available: quota exceeded",
				"Practice session ended.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			assistantClient := mock_assistant.NewMockAssistant(ctrl)
			assistantClient.EXPECT().GetSentenceExample(gomock.Any(), tt.word).Return(catExample, nil)
			assistantClient.EXPECT().GetFeedback(gomock.Any(), tt.word, "The cat sleeps.").Return(tt.feedback, tt.feedbackErr)

			cli, stdout := newTestPracticeCLI(t, tt.input, assistantClient, mock_audio.NewMockRecorder(ctrl))
			runSessions(t, cli)

			output := stdout.String()
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.notWantOutput {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestPracticeCLI_Recording(t *testing.T) {
	recording := filepath.Join(t.TempDir(), "recording.wav")
	require.NoError(t, os.WriteFile(recording, []byte("RIFF....WAVE"), 0644))

	ctrl := gomock.NewController(t)
	assistantClient := mock_assistant.NewMockAssistant(ctrl)
	recorder := mock_audio.NewMockRecorder(ctrl)
	handle := &audio.Handle{}
	ref := audio.FileRef{Path: recording}

	assistantClient.EXPECT().GetSentenceExample(gomock.Any(), "apple").Return(&assistant.ExampleResult{
		ExampleEng: "I eat an apple.",
		ExampleSpa: "Como una manzana.",
	}, nil)
	gomock.InOrder(
		recorder.EXPECT().StartRecording(gomock.Any()).Return(handle, nil),
		recorder.EXPECT().StopRecording(handle).Return(ref, nil),
		assistantClient.EXPECT().GetFeedbackFromAudio(gomock.Any(), "apple", ref).Return(&assistant.FeedbackResult{
			Feedback: "Dijiste: 'I eat apple'. Falta 'an'.",
			Pass:     assistant.VerdictBad,
		}, nil),
		recorder.EXPECT().StartRecording(gomock.Any()).Return(handle, nil),
		// Stopped without feedback when the input ends.
		recorder.EXPECT().StopRecording(handle).Return(ref, nil),
	)

	cli, stdout := newTestPracticeCLI(t, "1\nmanzana\n:rec\n:rec\n:rec\n", assistantClient, recorder)
	runSessions(t, cli)

	output := stdout.String()
	assert.Contains(t, output, "apple: manzana")
	assert.NotContains(t, output, "Pronunciation:")
	assert.Contains(t, output, "Recording... type :rec again to stop.")
	assert.Contains(t, output, "Recorded 12 bytes.")
	assert.Contains(t, output, "✘ bad Dijiste: 'I eat apple'. Falta 'an'.")
}

func TestPracticeCLI_NextWord(t *testing.T) {
	ctrl := gomock.NewController(t)
	assistantClient := mock_assistant.NewMockAssistant(ctrl)
	assistantClient.EXPECT().GetSentenceExample(gomock.Any(), "bread").Return(&assistant.ExampleResult{ExampleEng: "Fresh bread."}, nil)
	assistantClient.EXPECT().GetSentenceExample(gomock.Any(), "dog").Return(&assistant.ExampleResult{ExampleEng: "A happy dog."}, nil)

	cli, stdout := newTestPracticeCLI(t, "1\n2\n:next\n2\n1\nexit\n", assistantClient, mock_audio.NewMockRecorder(ctrl))
	runSessions(t, cli)

	output := stdout.String()
	assert.Contains(t, output, "bread: pan")
	assert.Contains(t, output, "Example: Fresh bread.")
	assert.Contains(t, output, "dog: perro")
	assert.Contains(t, output, "Example: A happy dog.")
}

func TestPracticeCLI_fetchExample_DiscardsStaleResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	assistantClient := mock_assistant.NewMockAssistant(ctrl)
	assistantClient.EXPECT().GetSentenceExample(gomock.Any(), "apple").Return(&assistant.ExampleResult{ExampleEng: "I eat an apple."}, nil)
	assistantClient.EXPECT().GetSentenceExample(gomock.Any(), "bread").Return(&assistant.ExampleResult{ExampleEng: "Fresh bread."}, nil)

	cli, stdout := newTestPracticeCLI(t, "", assistantClient, mock_audio.NewMockRecorder(ctrl))
	stale := cli.generation.Next()
	latest := cli.generation.Next()

	cli.fetchExample(context.Background(), stale, "apple")
	cli.fetchExample(context.Background(), latest, "bread")

	assert.NotContains(t, stdout.String(), "I eat an apple.")
	assert.Contains(t, stdout.String(), "Example: Fresh bread.")
}

func TestPracticeCLI_NextWord_DiscardsPendingExample(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "next word",
			input: "1\n1\n:next\n",
		},
		{
			name:  "quit",
			input: "1\n1\nquit\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			assistantClient := mock_assistant.NewMockAssistant(ctrl)
			release := make(chan struct{})
			assistantClient.EXPECT().GetSentenceExample(gomock.Any(), "apple").
				DoAndReturn(func(_ context.Context, _ string) (*assistant.ExampleResult, error) {
					<-release
					return &assistant.ExampleResult{ExampleEng: "Late apple example."}, nil
				})

			cli, stdout := newTestPracticeCLI(t, tt.input, assistantClient, mock_audio.NewMockRecorder(ctrl))
			// The example is still in flight while the learner leaves the word.
			for i := 0; i < 3; i++ {
				if err := cli.Session(context.Background()); err != nil {
					require.ErrorIs(t, err, errEnd)
					break
				}
			}
			close(release)
			cli.Wait()

			assert.Contains(t, stdout.String(), "apple: manzana")
			assert.NotContains(t, stdout.String(), "Late apple example.")
		})
	}
}

type countingSession struct {
	calls int
	endAt int
	err   error
}

func (s *countingSession) Session(_ context.Context) error {
	s.calls++
	if s.calls == s.endAt {
		return s.err
	}
	return nil
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		session *countingSession
		wantErr bool
	}{
		{
			name:    "ends",
			session: &countingSession{endAt: 3, err: errEnd},
		},
		{
			name:    "fails",
			session: &countingSession{endAt: 2, err: errors.New("stdin closed")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), tt.session)
			if tt.wantErr {
				assert.ErrorContains(t, err, "stdin closed")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.session.endAt, tt.session.calls)
		})
	}
}
