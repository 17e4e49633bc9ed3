package scrape

import "strings"

// Outcome classifies the site's free-text response to a submission.
// Outcomes other than Correct are normal results, not errors.
type Outcome int

const (
	// OutcomeUnrecognized means the response matched no known phrasing.
	OutcomeUnrecognized Outcome = iota
	// OutcomeCorrect means the answer was accepted.
	OutcomeCorrect
	// OutcomeIncorrect means the answer was rejected.
	OutcomeIncorrect
	// OutcomeRateLimited means an answer was given too recently.
	OutcomeRateLimited
)

// String returns the outcome's name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeRateLimited:
		return "rate-limited"
	default:
		return "unrecognized"
	}
}

// Message returns a short user-facing message for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeCorrect:
		return "That's the right answer!"
	case OutcomeIncorrect:
		return "That's not the right answer."
	case OutcomeRateLimited:
		return "You gave an answer too recently; wait before retrying."
	default:
		return "Unrecognized response from the puzzle site."
	}
}

// Classify matches the response prose against the known phrasings, in
// priority order.
func Classify(text string) Outcome {
	switch {
	case strings.Contains(text, "That's the right answer"):
		return OutcomeCorrect
	case strings.Contains(text, "not the right answer"):
		return OutcomeIncorrect
	case strings.Contains(text, "too recently"):
		return OutcomeRateLimited
	default:
		return OutcomeUnrecognized
	}
}
