package quiz

import "strings"

// Difficulty is the tier a question was generated at and the tier a topic
// is currently assigned by the analyzer.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts a tier name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", invalid("difficulty", "unknown difficulty %q (want easy, medium or hard)", s)
}

// OrMedium returns d, or Medium when d is empty or not a known tier.
func (d Difficulty) OrMedium() Difficulty {
	switch d {
	case Easy, Medium, Hard:
		return d
	}
	return Medium
}

// Question is a generated multiple-choice question ready for display.
type Question struct {
	// ID is a random identifier assigned at generation time.
	ID string `json:"id,omitempty"`

	// Text is the question prompt.
	Text string `json:"question"`

	// Choices holds the four options and the correct label.
	Choices OptionSet `json:"choices"`

	// Explanation is shown after the test is submitted.
	Explanation string `json:"explanation"`

	// Topic is the subject the question was generated for. Empty means
	// the question predates topic tagging.
	Topic string `json:"topic,omitempty"`

	// Difficulty is the tier requested from the generator.
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Validate checks the fields every stored question must carry.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return invalid("question", "text is empty")
	}
	if q.Choices.IsZero() {
		return invalid("choices", "missing options")
	}
	return nil
}

// AnsweredQuestion is a question plus the learner's selection.
type AnsweredQuestion struct {
	Question

	// UserAnswer is NoAnswer when the question was skipped.
	UserAnswer Label `json:"user_answer,omitempty"`
}

// Answered reports whether the learner picked an option.
func (a AnsweredQuestion) Answered() bool { return a.UserAnswer != NoAnswer }

// IsCorrect reports whether the selection matches the correct option.
func (a AnsweredQuestion) IsCorrect() bool {
	return a.Answered() && a.UserAnswer == a.Choices.Correct()
}
