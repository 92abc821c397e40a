package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Task tells the model which kind of answer is expected.
type Task int

const (
	TaskExampleGeneration Task = iota + 1
	TaskFeedbackEvaluation
)

var (
	ErrEmptyWord       = errors.New("current word must not be empty")
	ErrEmptyUserOutput = errors.New("user output must not be empty")
	ErrUnknownTask     = errors.New("unknown task")
)

// Tag returns the task name the system instruction refers to.
func (t Task) Tag() string {
	switch t {
	case TaskExampleGeneration:
		return "Task1"
	case TaskFeedbackEvaluation:
		return "Task2"
	}
	return ""
}

func (t Task) String() string {
	switch t {
	case TaskExampleGeneration:
		return "example_generation"
	case TaskFeedbackEvaluation:
		return "feedback_evaluation"
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

func (t Task) MarshalJSON() ([]byte, error) {
	tag := t.Tag()
	if tag == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTask, int(t))
	}
	return json.Marshal(tag)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	switch tag {
	case "Task1":
		*t = TaskExampleGeneration
	case "Task2":
		*t = TaskFeedbackEvaluation
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTask, tag)
	}
	return nil
}

// Request is one turn sent to the model.
// The key names are part of the prompt contract and must not change.
type Request struct {
	Task        Task   `json:"Task"`
	CurrentWord string `json:"Current word"`
	UserOutput  string `json:"User output"`
}

// Payload serializes the request as the single-element array the model expects.
func (r Request) Payload() (string, error) {
	var body bytes.Buffer
	encoder := json.NewEncoder(&body)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode([]Request{r}); err != nil {
		return "", fmt.Errorf("json.Encode > %w", err)
	}
	return strings.TrimSuffix(body.String(), "\n"), nil
}

func BuildExampleRequest(word string) (Request, error) {
	if strings.TrimSpace(word) == "" {
		return Request{}, ErrEmptyWord
	}
	return Request{
		Task:        TaskExampleGeneration,
		CurrentWord: word,
		UserOutput:  "",
	}, nil
}

func BuildFeedbackRequest(word, userOutput string) (Request, error) {
	if strings.TrimSpace(word) == "" {
		return Request{}, ErrEmptyWord
	}
	if strings.TrimSpace(userOutput) == "" {
		return Request{}, ErrEmptyUserOutput
	}
	return Request{
		Task:        TaskFeedbackEvaluation,
		CurrentWord: word,
		UserOutput:  userOutput,
	}, nil
}

// BuildAudioFeedbackRequest leaves the user output empty: the sentence to
// evaluate travels as an audio attachment in the same message.
func BuildAudioFeedbackRequest(word string) (Request, error) {
	if strings.TrimSpace(word) == "" {
		return Request{}, ErrEmptyWord
	}
	return Request{
		Task:        TaskFeedbackEvaluation,
		CurrentWord: word,
		UserOutput:  "",
	}, nil
}
