package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TestRecord is a submitted test. Correct and Wrong cache the tallies of
// Questions and must agree with them.
type TestRecord struct {
	ID        int64
	UserID    string
	Questions []AnsweredQuestion
	Correct   int
	Wrong     int
	CreatedAt time.Time
}

// Tally counts correct and wrong answers, ignoring unanswered questions.
func Tally(questions []AnsweredQuestion) (correct, wrong int) {
	for _, q := range questions {
		if !q.Answered() {
			continue
		}
		if q.IsCorrect() {
			correct++
		} else {
			wrong++
		}
	}
	return correct, wrong
}

// Validate checks the record before it is persisted.
func (r TestRecord) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return invalid("user_id", "empty user id")
	}
	if len(r.Questions) == 0 {
		return invalid("questions", "test has no questions")
	}
	for i, q := range r.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		if q.Answered() && !q.UserAnswer.Valid() {
			return invalid("user_answer", "question %d has unknown answer label %q", i+1, string(q.UserAnswer))
		}
	}
	c, w := Tally(r.Questions)
	if c != r.Correct || w != r.Wrong {
		return invalid("counts", "stored %d/%d does not match answers %d/%d", r.Correct, r.Wrong, c, w)
	}
	return nil
}

// Encode validates r and converts it into its stored form.
func (r TestRecord) Encode() (EncodedRecord, error) {
	if err := r.Validate(); err != nil {
		return EncodedRecord{}, err
	}
	payload, err := json.Marshal(r.Questions)
	if err != nil {
		return EncodedRecord{}, fmt.Errorf("encode questions: %w", err)
	}
	return EncodedRecord{
		ID:        r.ID,
		UserID:    r.UserID,
		Payload:   payload,
		Correct:   r.Correct,
		Wrong:     r.Wrong,
		CreatedAt: r.CreatedAt,
	}, nil
}

// EncodedRecord is a test result as it comes out of storage: metadata plus
// an undecoded question payload.
type EncodedRecord struct {
	ID        int64
	UserID    string
	Payload   json.RawMessage
	Correct   int
	Wrong     int
	CreatedAt time.Time
}

// Decode parses the payload. Any failure is returned as a *ParseError.
func (e EncodedRecord) Decode() (TestRecord, error) {
	var qs []AnsweredQuestion
	if err := json.Unmarshal(e.Payload, &qs); err != nil {
		return TestRecord{}, &ParseError{RecordID: e.ID, Err: err}
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return TestRecord{}, &ParseError{RecordID: e.ID, Err: fmt.Errorf("question %d: %w", i+1, err)}
		}
		if q.Answered() && !q.UserAnswer.Valid() {
			return TestRecord{}, &ParseError{RecordID: e.ID,
				Err: invalid("user_answer", "question %d has unknown answer label %q", i+1, string(q.UserAnswer))}
		}
	}
	return TestRecord{
		ID:        e.ID,
		UserID:    e.UserID,
		Questions: qs,
		Correct:   e.Correct,
		Wrong:     e.Wrong,
		CreatedAt: e.CreatedAt,
	}, nil
}

// Grade pairs questions with the learner's answers, keyed by question
// index, and returns the scored record. Indexes outside the batch are
// rejected, as are labels other than A-D.
func Grade(userID string, questions []Question, answers map[int]Label, now time.Time) (TestRecord, error) {
	out := make([]AnsweredQuestion, len(questions))
	for i, q := range questions {
		out[i] = AnsweredQuestion{Question: q}
	}
	for idx, l := range answers {
		if idx < 0 || idx >= len(questions) {
			return TestRecord{}, invalid("answers", "question index %d out of range", idx)
		}
		if l == NoAnswer {
			continue
		}
		if !l.Valid() {
			return TestRecord{}, invalid("answers", "unknown answer label %q", string(l))
		}
		out[idx].UserAnswer = l
	}

	c, w := Tally(out)
	rec := TestRecord{
		UserID:    userID,
		Questions: out,
		Correct:   c,
		Wrong:     w,
		CreatedAt: now.UTC(),
	}
	if err := rec.Validate(); err != nil {
		return TestRecord{}, err
	}
	return rec, nil
}
