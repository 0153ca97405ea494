package session

import (
	"context"
	"fmt"
	"time"

	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/questiongen"
	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/store"
)

// Test sources.
const (
	SourceTopic    = "topic"
	SourceDay      = "day"
	SourceWeighted = "weighted"
)

// TestDefinition is a generated question batch as stored in the tests
// table.
type TestDefinition struct {
	Source       string          `json:"source"`
	Label        string          `json:"label"`
	Questions    []quiz.Question `json:"questions"`
	FailedTopics []string        `json:"failed_topics,omitempty"`
}

// TestEntry is a stored test definition with its row metadata.
type TestEntry struct {
	ID        int64
	CreatedAt time.Time
	TestDefinition
}

// LevelDifficulty maps a plan level to the tier its day tests are asked at.
func LevelDifficulty(l planner.Level) quiz.Difficulty {
	switch l {
	case planner.Beginner:
		return quiz.Easy
	case planner.Advanced:
		return quiz.Hard
	}
	return quiz.Medium
}

// GenerateTopicTest asks for count questions on topic and makes them the
// active test. A count below 1 uses the configured topic test size.
func (s *Service) GenerateTopicTest(ctx context.Context, st *State, topic string, d quiz.Difficulty, count int) (TestEntry, error) {
	if count < 1 {
		count = s.settings.TopicQuestionCount
	}
	qs, err := s.questions.Generate(ctx, questiongen.Request{Topic: topic, Difficulty: d, Count: count})
	if err != nil {
		return TestEntry{}, err
	}
	label := fmt.Sprintf("%s (%s)", topic, d.OrMedium())
	return s.startTest(ctx, st, TestDefinition{Source: SourceTopic, Label: label, Questions: qs})
}

// GenerateDayTest builds the test for one day of the active plan, at the
// tier matching the plan's level.
func (s *Service) GenerateDayTest(ctx context.Context, st *State, day int) (TestEntry, error) {
	if st.ActivePlan == nil {
		return TestEntry{}, ErrNoActivePlan
	}
	d, ok := st.ActivePlan.Day(day)
	if !ok {
		return TestEntry{}, &quiz.ValidationError{Field: "day", Message: fmt.Sprintf("plan has no day %d", day)}
	}

	var avoid []string
	for _, q := range st.ActiveBatch {
		avoid = append(avoid, q.Text)
	}
	qs, err := s.questions.Generate(ctx, questiongen.Request{
		Topic:      d.Topic,
		Subtopic:   d.Subtopic,
		Difficulty: LevelDifficulty(st.ActivePlan.Request.Level),
		Count:      s.settings.DayQuestionCount,
		Avoid:      avoid,
	})
	if err != nil {
		return TestEntry{}, err
	}
	label := fmt.Sprintf("Day %d: %s", d.Day, d.Topic)
	if d.Subtopic != "" {
		label += " / " + d.Subtopic
	}
	return s.startTest(ctx, st, TestDefinition{Source: SourceDay, Label: label, Questions: qs})
}

// GenerateWeightedTest draws n questions biased toward weak topics, using
// the state's analysis or a fresh one when the state has none. Failed
// topics are listed in the definition; the test proceeds with the rest.
func (s *Service) GenerateWeightedTest(ctx context.Context, st *State, n int) (TestEntry, error) {
	if n < 1 {
		n = s.settings.WeightedQuestionCount
	}
	if len(st.Analysis) == 0 {
		if _, err := s.AnalyzeTopics(ctx, st); err != nil {
			return TestEntry{}, err
		}
	}

	batch, err := s.questions.GenerateFromAnalysis(ctx, st.Analysis, n)
	if err != nil {
		return TestEntry{}, err
	}
	def := TestDefinition{
		Source:    SourceWeighted,
		Label:     fmt.Sprintf("Weighted practice (%d questions)", len(batch.Questions)),
		Questions: batch.Questions,
	}
	for _, f := range batch.Failed {
		def.FailedTopics = append(def.FailedTopics, f.Topic)
	}
	return s.startTest(ctx, st, def)
}

func (s *Service) startTest(ctx context.Context, st *State, def TestDefinition) (TestEntry, error) {
	now := s.now()
	id, err := s.tests.Save(ctx, st.User, def, now)
	if err != nil {
		return TestEntry{}, fmt.Errorf("save test: %w", err)
	}
	st.SetBatch(id, def.Label, def.Questions)
	s.log(st).Info("test generated",
		"test_id", id, "source", def.Source, "questions", len(def.Questions), "failed_topics", len(def.FailedTopics))
	return TestEntry{ID: id, CreatedAt: now, TestDefinition: def}, nil
}

// OpenTest loads stored test id as the active test.
func (s *Service) OpenTest(ctx context.Context, st *State, id int64) (TestEntry, error) {
	rec, err := s.tests.Get(ctx, st.User, id)
	if err != nil {
		return TestEntry{}, fmt.Errorf("open test %d: %w", id, err)
	}
	entry, err := decodeTest(rec)
	if err != nil {
		return TestEntry{}, err
	}
	st.SetBatch(entry.ID, entry.Label, entry.Questions)
	return entry, nil
}

// ListTests returns stored test definitions, newest first. Unreadable
// rows are logged and skipped.
func (s *Service) ListTests(ctx context.Context, st *State) ([]TestEntry, error) {
	recs, err := s.tests.List(ctx, st.User, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	out := make([]TestEntry, 0, len(recs))
	for _, rec := range recs {
		entry, err := decodeTest(rec)
		if err != nil {
			s.log(st).Warn("skipping unreadable test", "record_id", rec.ID, "error", err)
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// DeleteTest removes test definition id.
func (s *Service) DeleteTest(ctx context.Context, st *State, id int64) error {
	if err := s.tests.Delete(ctx, st.User, id); err != nil {
		return fmt.Errorf("delete test %d: %w", id, err)
	}
	if st.ActiveTestID == id {
		st.ClearBatch()
	}
	return nil
}

// SubmitTest scores the active test, stores the result and ends the test.
func (s *Service) SubmitTest(ctx context.Context, st *State) (quiz.TestRecord, error) {
	if len(st.ActiveBatch) == 0 {
		return quiz.TestRecord{}, ErrNoActiveBatch
	}
	rec, err := quiz.Grade(st.User, st.ActiveBatch, st.Answers, s.now())
	if err != nil {
		return quiz.TestRecord{}, err
	}
	id, err := s.results.Save(ctx, rec)
	if err != nil {
		return quiz.TestRecord{}, fmt.Errorf("save result: %w", err)
	}
	rec.ID = id

	s.log(st).Info("test submitted",
		"result_id", id, "test_id", st.ActiveTestID, "correct", rec.Correct, "wrong", rec.Wrong,
		"unanswered", len(rec.Questions)-rec.Correct-rec.Wrong)
	st.LastResult = &rec
	st.ClearBatch()
	// Stale once a new result exists.
	st.Analysis = nil
	return rec, nil
}

func decodeTest(rec store.BlobRecord) (TestEntry, error) {
	var def TestDefinition
	if err := rec.Decode(&def); err != nil {
		return TestEntry{}, err
	}
	return TestEntry{ID: rec.ID, CreatedAt: rec.CreatedAt, TestDefinition: def}, nil
}
