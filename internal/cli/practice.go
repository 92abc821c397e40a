package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/at-ishikawa/wordcoach/internal/audio"
	"github.com/at-ishikawa/wordcoach/internal/dictionary"
	"github.com/at-ishikawa/wordcoach/internal/vocabulary"
)

const (
	commandRecord = ":rec"
	commandNext   = ":next"
)

type PronunciationReader interface {
	Pronunciation(ctx context.Context, word string) (string, error)
}

// PracticeCLI walks the learner through category, word, example and
// practice sentences.
type PracticeCLI struct {
	catalog       *vocabulary.Catalog
	assistant     assistant.Assistant
	recorder      audio.Recorder
	pronunciation PronunciationReader
	stdinReader   *bufio.Reader

	// Examples arrive in the background, so writes to stdout are serialized.
	mu           sync.Mutex
	stdoutWriter io.Writer
	generation   assistant.Generation
	pending      sync.WaitGroup

	category  vocabulary.Category
	word      vocabulary.Word
	recording *audio.Handle
}

func NewPracticeCLI(
	catalog *vocabulary.Catalog,
	assistantClient assistant.Assistant,
	recorder audio.Recorder,
	pronunciation PronunciationReader,
	stdin io.Reader,
	stdout io.Writer,
) *PracticeCLI {
	return &PracticeCLI{
		catalog:       catalog,
		assistant:     assistantClient,
		recorder:      recorder,
		pronunciation: pronunciation,
		stdinReader:   bufio.NewReader(stdin),
		stdoutWriter:  stdout,
	}
}

func (cli *PracticeCLI) Session(ctx context.Context) error {
	if cli.word.English == "" {
		if err := cli.selectWord(ctx); err != nil {
			return err
		}
		return nil
	}

	input, err := cli.prompt(fmt.Sprintf("Sentence with %q (%s, %s, quit): ", cli.word.English, commandRecord, commandNext))
	if err != nil {
		return err
	}

	switch input {
	case "":
		return nil
	case "quit", "exit":
		return cli.end()
	case commandNext:
		cli.leaveWord()
		return nil
	case commandRecord:
		cli.toggleRecording(ctx)
		return nil
	}

	feedback, err := cli.assistant.GetFeedback(ctx, cli.word.English, input)
	cli.showFeedback(feedback, err)
	return nil
}

// Wait blocks until background example requests are done.
func (cli *PracticeCLI) Wait() {
	cli.pending.Wait()
}

func (cli *PracticeCLI) end() error {
	cli.leaveWord()
	cli.printf("Practice session ended.\n")
	return errEnd
}

// leaveWord stops any recording and invalidates the example still in flight
// for the current word.
func (cli *PracticeCLI) leaveWord() {
	if cli.recording != nil {
		cli.stopRecording()
	}
	cli.generation.Next()
	cli.word = vocabulary.Word{}
}

func (cli *PracticeCLI) selectWord(ctx context.Context) error {
	categories := cli.catalog.Categories()
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, fmt.Sprintf("%s (%s)", category.Name, category.NameSpanish))
	}
	index, err := cli.choose("Categories", names, func(input string) (int, bool) {
		category, err := cli.catalog.Category(input)
		if err != nil {
			return 0, false
		}
		for i := range categories {
			if categories[i].Name == category.Name {
				return i, true
			}
		}
		return 0, false
	})
	if err != nil {
		return err
	}
	cli.category = categories[index]

	words := cli.category.Words
	names = make([]string, 0, len(words))
	for _, word := range words {
		names = append(names, fmt.Sprintf("%s (%s)", word.English, word.Spanish))
	}
	index, err = cli.choose("Words in "+cli.category.Name, names, func(input string) (int, bool) {
		for i, word := range words {
			if strings.EqualFold(word.English, input) || strings.EqualFold(word.Spanish, input) {
				return i, true
			}
		}
		return 0, false
	})
	if err != nil {
		return err
	}
	cli.word = words[index]

	cli.showWord(ctx)
	return nil
}

// choose lists options and reads until the learner picks one by number or name.
func (cli *PracticeCLI) choose(title string, options []string, byName func(string) (int, bool)) (int, error) {
	if len(options) == 0 {
		cli.printf("%s: nothing to choose from.\n", title)
		return 0, cli.end()
	}

	cli.printf("%s\n", bold.Sprint(title))
	for i, option := range options {
		cli.printf("  %d. %s\n", i+1, option)
	}
	for {
		input, err := cli.prompt("Choose: ")
		if err != nil {
			return 0, err
		}
		if input == "quit" || input == "exit" {
			return 0, cli.end()
		}
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		if index, ok := byName(input); ok {
			return index, nil
		}
		cli.printf("%s is not in the list.\n", strconv.Quote(input))
	}
}

func (cli *PracticeCLI) showWord(ctx context.Context) {
	word := cli.word
	cli.printf("\n%s: %s\n", bold.Sprint(word.English), italic.Sprint(word.Spanish))

	ipa, err := cli.pronunciation.Pronunciation(ctx, word.English)
	switch {
	case err == nil && ipa != "":
		cli.printf("Pronunciation: /%s/\n", ipa)
	case err != nil && !errors.Is(err, dictionary.ErrNotConfigured):
		slog.Default().Warn("Failed to look up the pronunciation", "word", word.English, "error", err)
	}
	if word.Audio != "" {
		cli.printf("Listen: %s\n", word.Audio)
	}

	ticket := cli.generation.Next()
	cli.pending.Add(1)
	go func() {
		defer cli.pending.Done()
		cli.fetchExample(ctx, ticket, word.English)
	}()
}

// fetchExample prints the example only when the learner is still on the word
// it was requested for.
func (cli *PracticeCLI) fetchExample(ctx context.Context, ticket assistant.Ticket, word string) {
	example, err := cli.assistant.GetSentenceExample(ctx, word)
	if !cli.generation.IsLatest(ticket) {
		slog.Default().Debug("Discarded a stale example", "word", word)
		return
	}

	cli.mu.Lock()
	defer cli.mu.Unlock()
	if err != nil {
		_, _ = fmt.Fprintln(cli.stdoutWriter, red.Sprint(DescribeError(err)))
		return
	}
	if err := PrintExample(cli.stdoutWriter, word, example); err != nil {
		slog.Default().Error("Failed to print the example", "error", err)
	}
}

func (cli *PracticeCLI) toggleRecording(ctx context.Context) {
	if cli.recording == nil {
		handle, err := cli.recorder.StartRecording(ctx)
		if err != nil {
			cli.printf("%s\n", red.Sprintf("Could not start recording: %v", err))
			return
		}
		cli.recording = handle
		cli.printf("Recording... type %s again to stop.\n", commandRecord)
		return
	}

	ref := cli.stopRecording()
	if ref.IsZero() {
		return
	}
	cli.printf("Recorded %d bytes.\n", audio.GetAudioInfo(ref).Size)
	feedback, err := cli.assistant.GetFeedbackFromAudio(ctx, cli.word.English, ref)
	cli.showFeedback(feedback, err)
}

func (cli *PracticeCLI) stopRecording() audio.FileRef {
	handle := cli.recording
	cli.recording = nil
	ref, err := cli.recorder.StopRecording(handle)
	if err != nil {
		cli.printf("%s\n", red.Sprintf("Could not stop recording: %v", err))
		return audio.FileRef{}
	}
	return ref
}

func (cli *PracticeCLI) showFeedback(feedback *assistant.FeedbackResult, err error) {
	cli.mu.Lock()
	defer cli.mu.Unlock()
	if err != nil {
		_, _ = fmt.Fprintln(cli.stdoutWriter, red.Sprint(DescribeError(err)))
		return
	}
	if err := PrintFeedback(cli.stdoutWriter, feedback); err != nil {
		slog.Default().Error("Failed to print the feedback", "error", err)
	}
}

func (cli *PracticeCLI) prompt(message string) (string, error) {
	cli.printf("%s", message)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			cli.leaveWord()
			return "", errEnd
		}
		return "", fmt.Errorf("stdinReader.ReadString > %w", err)
	}
	return strings.TrimSpace(input), nil
}

func (cli *PracticeCLI) printf(format string, args ...any) {
	cli.mu.Lock()
	defer cli.mu.Unlock()
	_, _ = fmt.Fprintf(cli.stdoutWriter, format, args...)
}
