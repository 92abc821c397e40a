package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/wordcoach/internal/assistant"
	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold)
	italic = color.New(color.Italic)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
)

// PrintExample writes an example sentence with its translation and the topic
// suggested for the learner's own sentence.
func PrintExample(w io.Writer, word string, example *assistant.ExampleResult) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", bold.Sprint("Example:"), example.ExampleEng); err != nil {
		return fmt.Errorf("fmt.Fprintf > %w", err)
	}
	if _, err := fmt.Fprintf(w, "         %s\n", italic.Sprint(example.ExampleSpa)); err != nil {
		return fmt.Errorf("fmt.Fprintf > %w", err)
	}
	if example.SentenceHelp != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", bold.Sprintf("Your turn with %q:", word), example.SentenceHelp); err != nil {
			return fmt.Errorf("fmt.Fprintf > %w", err)
		}
	}
	return nil
}

func PrintFeedback(w io.Writer, feedback *assistant.FeedbackResult) error {
	verdict := red.Sprintf("✘ %s", feedback.Pass)
	if feedback.Passed() {
		verdict = green.Sprintf("✔ %s", feedback.Pass)
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", verdict, feedback.Feedback); err != nil {
		return fmt.Errorf("fmt.Fprintf > %w", err)
	}
	return nil
}

// DescribeError turns an assistant failure into a line for the learner.
// Unreadable answers are shown as "nothing to display".
func DescribeError(err error) string {
	if errors.Is(err, assistant.ErrExtraction) {
		return "The assistant's answer could not be read. Please try again."
	}
	return fmt.Sprintf("The assistant is not available: %v", err)
}
