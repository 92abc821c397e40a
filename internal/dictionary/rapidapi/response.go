// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Response struct {
	Word          string        `json:"word"`
	Syllables     Syllable      `json:"syllables"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Syllable struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}

	var all string
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = all
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	Derivation   []string `json:"derivation,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	SimilarTo    []string `json:"similarTo,omitempty"`
	TypeOf       []string `json:"typeOf,omitempty"`
	Examples     []string `json:"examples"`
}

// Headword renders the word with its IPA, e.g. "apple: /ˈæpəl/".
func (r Response) Headword() string {
	if r.Pronunciation.All == "" {
		return r.Word
	}
	return fmt.Sprintf("%s: /%s/", r.Word, r.Pronunciation.All)
}

// Describe lists at most limit definitions under the headword; limit <= 0 lists all.
func (r Response) Describe(limit int) string {
	results := r.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	lines := []string{r.Headword()}
	for _, result := range results {
		lines = append(lines, fmt.Sprintf("[%s]: %s", result.PartOfSpeech, result.Definition))
		if len(result.Examples) > 0 {
			lines = append(lines, fmt.Sprintf("  Examples: %s", strings.Join(result.Examples, ", ")))
		}
		if len(result.Synonyms) > 0 {
			lines = append(lines, fmt.Sprintf("  Synonyms: %s", strings.Join(result.Synonyms, ", ")))
		}
	}
	return strings.Join(lines, "\n")
}
