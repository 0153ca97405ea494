package questiongen

import (
	"fmt"
	"strings"

	"github.com/eduwise/eduwise/internal/quiz"
)

// Request asks for Count questions about one topic.
type Request struct {
	Topic      string
	Subtopic   string
	Difficulty quiz.Difficulty
	Count      int

	// Avoid holds question texts already asked, so the model does not
	// repeat them.
	Avoid []string
}

func (r Request) validate(max int) error {
	if strings.TrimSpace(r.Topic) == "" {
		return &quiz.ValidationError{Field: "topic", Message: "topic is required"}
	}
	if r.Count < 1 {
		return &quiz.ValidationError{Field: "count", Message: fmt.Sprintf("question count must be positive, got %d", r.Count)}
	}
	if max > 0 && r.Count > max {
		return &quiz.ValidationError{Field: "count", Message: fmt.Sprintf("at most %d questions per request, got %d", max, r.Count)}
	}
	return nil
}

// TopicFailure records a topic whose questions could not be generated.
type TopicFailure struct {
	Topic string
	Count int
	Err   error
}

// Batch is the outcome of a weighted generation run. Questions from
// failed topics are absent and the topics are listed in Failed.
type Batch struct {
	Questions []quiz.Question
	Failed    []TopicFailure
}

// rawBatch is the LLM response before normalization.
type rawBatch struct {
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}
