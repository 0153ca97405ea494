package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/quiz"
)

// State is the per-user context passed into every action: who is acting,
// which plan is open and which question batch is being answered.
type State struct {
	// ID correlates log lines of one TUI or CLI run.
	ID string

	User string

	ActivePlan   *planner.Plan
	ActivePlanID int64

	// ActiveBatch is the test being taken. ActiveTestID is its row in the
	// tests table.
	ActiveBatch  []quiz.Question
	ActiveTestID int64
	ActiveLabel  string

	// Answers maps question index to the selected label.
	Answers map[int]quiz.Label

	// Analysis is the most recent topic analysis, reused for weighted tests.
	Analysis []analysis.TopicAnalysis

	// LastResult is the most recently submitted test.
	LastResult *quiz.TestRecord
}

// NewState creates a State for user.
func NewState(user string) *State {
	return &State{
		ID:      uuid.NewString(),
		User:    user,
		Answers: make(map[int]quiz.Label),
	}
}

// SetPlan makes plan the active plan.
func (s *State) SetPlan(id int64, plan planner.Plan) {
	s.ActivePlan = &plan
	s.ActivePlanID = id
}

// ClearPlan forgets the active plan.
func (s *State) ClearPlan() {
	s.ActivePlan = nil
	s.ActivePlanID = 0
}

// SetBatch starts a new test and drops any previous answers.
func (s *State) SetBatch(id int64, label string, questions []quiz.Question) {
	s.ActiveBatch = questions
	s.ActiveTestID = id
	s.ActiveLabel = label
	s.Answers = make(map[int]quiz.Label)
}

// ClearBatch ends the active test.
func (s *State) ClearBatch() {
	s.SetBatch(0, "", nil)
}

// Answer records the selection for question idx. NoAnswer clears it.
func (s *State) Answer(idx int, l quiz.Label) error {
	if idx < 0 || idx >= len(s.ActiveBatch) {
		return &quiz.ValidationError{Field: "answers", Message: fmt.Sprintf("question index %d out of range", idx)}
	}
	if l == quiz.NoAnswer {
		delete(s.Answers, idx)
		return nil
	}
	if !l.Valid() {
		return &quiz.ValidationError{Field: "answers", Message: fmt.Sprintf("unknown answer label %q", string(l))}
	}
	s.Answers[idx] = l
	return nil
}

// AnsweredCount is the number of questions with a selection.
func (s *State) AnsweredCount() int { return len(s.Answers) }
