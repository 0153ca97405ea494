package analysis

import (
	"testing"
	"time"

	"github.com/eduwise/eduwise/internal/quiz"
)

var opts = []string{"one", "two", "three", "four"}

// answers builds answered questions for topic: correct ones pick A, wrong
// ones pick B, skipped ones are left unanswered. The correct option is A.
func answers(t *testing.T, topic string, correct, wrong, skipped int) []quiz.AnsweredQuestion {
	t.Helper()
	set, err := quiz.NewOptionSet(opts, quiz.LabelA)
	if err != nil {
		t.Fatalf("option set: %v", err)
	}
	q := quiz.Question{Text: "q", Choices: set, Topic: topic, Difficulty: quiz.Medium}

	var out []quiz.AnsweredQuestion
	for range correct {
		out = append(out, quiz.AnsweredQuestion{Question: q, UserAnswer: quiz.LabelA})
	}
	for range wrong {
		out = append(out, quiz.AnsweredQuestion{Question: q, UserAnswer: quiz.LabelB})
	}
	for range skipped {
		out = append(out, quiz.AnsweredQuestion{Question: q})
	}
	return out
}

func record(qs ...[]quiz.AnsweredQuestion) quiz.TestRecord {
	var all []quiz.AnsweredQuestion
	for _, q := range qs {
		all = append(all, q...)
	}
	c, w := quiz.Tally(all)
	return quiz.TestRecord{UserID: "u1", Questions: all, Correct: c, Wrong: w, CreatedAt: time.Date(2026, 5, 4, 9, 0, 0, 0, time.Local)}
}
