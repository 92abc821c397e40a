package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrExtraction is matched by every failure to recover a JSON array from a
// model response. Callers treat it as "nothing to display".
var ErrExtraction = errors.New("no structured result in model response")

var (
	ErrNoClosingBracket = fmt.Errorf("%w: closing bracket not found", ErrExtraction)
	ErrEmptyResult      = fmt.Errorf("%w: empty array", ErrExtraction)
	ErrInvalidVerdict   = fmt.Errorf("%w: pass is neither good nor bad", ErrExtraction)
)

// MalformedJSONError is returned when a bracket-terminated fragment was found
// but could not be decoded.
type MalformedJSONError struct {
	Fragment string
	Err      error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("%v: malformed JSON %q: %v", ErrExtraction, e.Fragment, e.Err)
}

func (e *MalformedJSONError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}

// Extract recovers the leading JSON array of a model response.
func Extract(raw string) ([]map[string]any, error) {
	fragment, err := arrayFragment(raw)
	if err != nil {
		return nil, err
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(fragment), &entries); err != nil {
		return nil, &MalformedJSONError{Fragment: fragment, Err: err}
	}
	return entries, nil
}

// ExtractFirst decodes the leading JSON array of a model response and
// returns its first element.
func ExtractFirst[T any](raw string) (T, error) {
	var zero T
	fragment, err := arrayFragment(raw)
	if err != nil {
		return zero, err
	}

	var entries []T
	if err := json.Unmarshal([]byte(fragment), &entries); err != nil {
		return zero, &MalformedJSONError{Fragment: fragment, Err: err}
	}
	if len(entries) == 0 {
		return zero, ErrEmptyResult
	}
	return entries[0], nil
}

// arrayFragment returns the text from the start of the response through the
// bracket closing the first array. Brackets inside JSON strings are skipped,
// so nested arrays and values such as "a]b" do not end the scan early.
// A closing bracket met before any opening one also ends the fragment.
func arrayFragment(raw string) (string, error) {
	text := stripOpeningFence(raw)

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			// prose before the array may contain stray quotes
			if depth > 0 {
				inString = true
			}
		case '[':
			depth++
		case ']':
			depth--
			if depth <= 0 {
				return text[:i+1], nil
			}
		}
	}
	return "", ErrNoClosingBracket
}

// stripOpeningFence removes a leading "```lang\n" marker.
func stripOpeningFence(raw string) string {
	text := strings.TrimLeft(raw, " \t\r\n")
	if !strings.HasPrefix(text, "```") {
		return text
	}

	rest := text[len("```"):]
	newline := strings.IndexByte(rest, '\n')
	if newline < 0 {
		return text
	}
	if !isLanguageTag(strings.TrimRight(rest[:newline], " \r")) {
		return text
	}
	return rest[newline+1:]
}

func isLanguageTag(tag string) bool {
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '+', r == '.':
		default:
			return false
		}
	}
	return true
}
