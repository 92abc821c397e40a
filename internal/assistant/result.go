package assistant

// Verdict is the model's judgement of a practice sentence.
type Verdict string

const (
	VerdictGood Verdict = "good"
	VerdictBad  Verdict = "bad"
)

func (v Verdict) Passed() bool {
	return v == VerdictGood
}

func (v Verdict) Valid() bool {
	return v == VerdictGood || v == VerdictBad
}

// ExampleResult is the answer to an example generation request.
// ExampleEng and ExampleSpa are the same sentence in English and Spanish;
// SentenceHelp is a topic the learner can use to write their own sentence.
type ExampleResult struct {
	ExampleEng   string `json:"ExampleEng"`
	ExampleSpa   string `json:"ExampleSpa"`
	SentenceHelp string `json:"SentenceHelp"`
}

// FeedbackResult is the answer to a feedback evaluation request.
// Feedback is written in Spanish.
type FeedbackResult struct {
	Feedback string  `json:"feedback"`
	Pass     Verdict `json:"pass"`
}

func (r FeedbackResult) Passed() bool {
	return r.Pass.Passed()
}
