package questiongen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/llm"
	"github.com/eduwise/eduwise/internal/quiz"
)

func item(text string, options []string, correct string) map[string]any {
	return map[string]any{
		"question":       text,
		"options":        options,
		"correct_answer": correct,
		"explanation":    "because",
	}
}

// batchOf returns n well-formed questions whose correct option is always
// listed first.
func batchOf(prefix string, n int) llm.MockResponse {
	items := make([]map[string]any, n)
	for i := range n {
		items[i] = item(
			fmt.Sprintf("%s question %d?", prefix, i+1),
			[]string{
				fmt.Sprintf("right %d", i),
				fmt.Sprintf("wrong %d-1", i),
				fmt.Sprintf("wrong %d-2", i),
				fmt.Sprintf("wrong %d-3", i),
			},
			"A",
		)
	}
	return llm.MockJSON(map[string]any{"questions": items})
}

func newTestGenerator(mock *llm.MockProvider) *Generator {
	return New(mock, DefaultConfig(), nil, rand.New(rand.NewPCG(7, 11)))
}

func TestGenerateForTopic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"questions": []any{
			item("Capital of France?", []string{"Berlin", "Paris", "Rome", "Madrid"}, "B"),
			item("Largest planet?", []string{"Mars", "Venus", "Jupiter", "Earth"}, "C"),
		},
	}))
	gen := newTestGenerator(mock)

	qs, err := gen.GenerateForTopic(context.Background(), "Geography", quiz.Hard, 2)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "Paris", qs[0].Choices.CorrectText())
	assert.Equal(t, "Jupiter", qs[1].Choices.CorrectText())
	for _, q := range qs {
		assert.Equal(t, "Geography", q.Topic)
		assert.Equal(t, quiz.Hard, q.Difficulty)
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, "because", q.Explanation)
	}
	assert.NotEqual(t, qs[0].ID, qs[1].ID)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Same(t, BatchSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Topic: Geography")
	assert.Contains(t, call.Messages[0].Content, "Difficulty: hard")
	assert.Contains(t, call.Messages[0].Content, "Number of questions: 2")
}

func TestGenerate_ShufflesCorrectPosition(t *testing.T) {
	gen := newTestGenerator(llm.NewMockProvider(batchOf("q", 40)))

	qs, err := gen.GenerateForTopic(context.Background(), "Verbs", quiz.Easy, 40)
	require.NoError(t, err)

	labels := map[quiz.Label]bool{}
	for i, q := range qs {
		assert.Equal(t, fmt.Sprintf("right %d", i), q.Choices.CorrectText())
		labels[q.Choices.Correct()] = true
	}
	assert.Greater(t, len(labels), 1, "correct option should not always land in the same slot")
}

func TestGenerate_TruncatesLongBatch(t *testing.T) {
	gen := newTestGenerator(llm.NewMockProvider(batchOf("q", 5)))

	qs, err := gen.GenerateForTopic(context.Background(), "Verbs", quiz.Medium, 3)
	require.NoError(t, err)
	assert.Len(t, qs, 3)
}

func TestGenerate_DuplicateOptionsRejected(t *testing.T) {
	// Case differences pass uniqueItems but not the option set.
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"questions": []any{
			item("Capital of France?", []string{"Paris", "paris", "Rome", "Madrid"}, "A"),
		},
	}))

	_, err := newTestGenerator(mock).GenerateForTopic(context.Background(), "Geography", quiz.Easy, 1)
	var ve *quiz.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "options", ve.Field)
}

func TestGenerate_SchemaViolationIsProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"questions": []any{
			item("Capital of France?", []string{"Paris", "Rome", "Madrid", "Oslo"}, "E"),
		},
	}))

	_, err := newTestGenerator(mock).GenerateForTopic(context.Background(), "Geography", quiz.Easy, 1)
	require.Error(t, err)
	assert.True(t, llm.IsProviderError(err))
}

func TestGenerate_RequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"empty topic", Request{Topic: " ", Count: 1}, "topic"},
		{"zero count", Request{Topic: "Verbs", Count: 0}, "count"},
		{"over cap", Request{Topic: "Verbs", Count: 41}, "count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			_, err := newTestGenerator(mock).Generate(context.Background(), tt.req)
			var ve *quiz.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Zero(t, mock.CallCount())
		})
	}
}

func TestGenerate_SubtopicAndAvoidInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(batchOf("q", 1))
	_, err := newTestGenerator(mock).Generate(context.Background(), Request{
		Topic:    "Grammar",
		Subtopic: "Past tense",
		Count:    1,
		Avoid:    []string{"What is the past tense of go?"},
	})
	require.NoError(t, err)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "Subtopic: Past tense")
	assert.Contains(t, msg, "Difficulty: medium")
	assert.Contains(t, msg, "1. What is the past tense of go?")
}

func TestGenerateFromAnalysis_SingleTopic(t *testing.T) {
	a := []analysis.TopicAnalysis{{Topic: "Verbs", SuccessRate: 30, Difficulty: quiz.Easy, Weight: 1}}
	mock := llm.NewMockProvider(batchOf("verbs", 6))

	batch, err := newTestGenerator(mock).GenerateFromAnalysis(context.Background(), a, 6)
	require.NoError(t, err)
	assert.Empty(t, batch.Failed)
	require.Len(t, batch.Questions, 6)
	for _, q := range batch.Questions {
		assert.Equal(t, "Verbs", q.Topic)
		assert.Equal(t, quiz.Easy, q.Difficulty)
	}
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Number of questions: 6")
}

func TestGenerateFromAnalysis_OneTopicFails(t *testing.T) {
	a := []analysis.TopicAnalysis{
		{Topic: "Verbs", SuccessRate: 50, Difficulty: quiz.Medium, Weight: 0.5},
		{Topic: "Nouns", SuccessRate: 50, Difficulty: quiz.Medium, Weight: 0.5},
	}
	const n = 40
	// Draws follow analysis order, so the first call is for Verbs.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("quota exhausted")}},
		batchOf("nouns", n),
	)

	batch, err := newTestGenerator(mock).GenerateFromAnalysis(context.Background(), a, n)
	require.NoError(t, err)
	require.Len(t, batch.Failed, 1)

	failed := batch.Failed[0]
	assert.Equal(t, "Verbs", failed.Topic)
	assert.True(t, llm.IsProviderError(failed.Err))

	assert.Less(t, len(batch.Questions), n)
	assert.Equal(t, n, len(batch.Questions)+failed.Count)
	for _, q := range batch.Questions {
		assert.Equal(t, "Nouns", q.Topic)
	}
}

func TestGenerateFromAnalysis_SplitsLargeTopic(t *testing.T) {
	a := []analysis.TopicAnalysis{{Topic: "Verbs", SuccessRate: 30, Difficulty: quiz.Easy, Weight: 1}}
	const n = 41
	mock := llm.NewMockProvider(batchOf("first", 40), batchOf("second", 1))

	batch, err := newTestGenerator(mock).GenerateFromAnalysis(context.Background(), a, n)
	require.NoError(t, err)
	assert.Empty(t, batch.Failed)
	assert.Len(t, batch.Questions, n)

	require.Equal(t, 2, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Number of questions: 40")
	second := mock.Calls[1].Messages[0].Content
	assert.Contains(t, second, "Number of questions: 1")
	assert.Contains(t, second, "first question 40?")
}

func TestGenerateFromAnalysis_MalformedQuestionFailsRun(t *testing.T) {
	a := []analysis.TopicAnalysis{
		{Topic: "Verbs", SuccessRate: 50, Difficulty: quiz.Medium, Weight: 0.5},
		{Topic: "Nouns", SuccessRate: 50, Difficulty: quiz.Medium, Weight: 0.5},
	}
	const n = 40
	mock := llm.NewMockProvider(
		llm.MockJSON(map[string]any{
			"questions": []any{
				item("Capital of France?", []string{"Paris", "paris", "Rome", "Madrid"}, "A"),
			},
		}),
		batchOf("nouns", n),
	)

	batch, err := newTestGenerator(mock).GenerateFromAnalysis(context.Background(), a, n)
	var ve *quiz.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, llm.IsProviderError(err))
	assert.Empty(t, batch.Failed)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateFromAnalysis_AllFail(t *testing.T) {
	a := []analysis.TopicAnalysis{{Topic: "Verbs", Difficulty: quiz.Easy, Weight: 1}}
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})

	batch, err := newTestGenerator(mock).GenerateFromAnalysis(context.Background(), a, 3)
	assert.ErrorIs(t, err, ErrNoQuestions)
	require.Len(t, batch.Failed, 1)
	assert.Equal(t, 3, batch.Failed[0].Count)
}

func TestGenerateFromAnalysis_NoWeights(t *testing.T) {
	a := []analysis.TopicAnalysis{{Topic: "Nouns", SuccessRate: 100, Difficulty: quiz.Hard, Weight: 0}}
	mock := llm.NewMockProvider()

	_, err := newTestGenerator(mock).GenerateFromAnalysis(context.Background(), a, 5)
	assert.ErrorIs(t, err, analysis.ErrNoWeights)
	assert.Zero(t, mock.CallCount())
}

func TestBuildAvoid(t *testing.T) {
	assert.Equal(t, "None", buildAvoid(nil, 3))

	got := buildAvoid([]string{"a", "b", "c", "d"}, 2)
	assert.Equal(t, "1. c\n2. d", got)
	assert.False(t, strings.HasSuffix(got, "\n"))
}
