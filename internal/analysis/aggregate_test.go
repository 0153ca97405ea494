package analysis

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	records := []quiz.TestRecord{
		record(answers(t, "Verbs", 2, 3, 1), answers(t, "Nouns", 4, 0, 0)),
		record(answers(t, "Verbs", 1, 4, 2), answers(t, "", 1, 1, 0)),
		record(answers(t, "Nouns", 5, 1, 3)),
	}

	got := Aggregate(records)

	assert.Equal(t, map[string]TopicStat{
		"Verbs":      {Topic: "Verbs", Correct: 3, Wrong: 7},
		"Nouns":      {Topic: "Nouns", Correct: 9, Wrong: 1},
		GeneralTopic: {Topic: GeneralTopic, Correct: 1, Wrong: 1},
	}, got)
}

func TestAggregate_OnlyUnanswered(t *testing.T) {
	got := Aggregate([]quiz.TestRecord{record(answers(t, "Verbs", 0, 0, 5))})
	assert.Empty(t, got)
}

func TestAggregateEncoded_SkipsUnreadable(t *testing.T) {
	good, err := record(answers(t, "Verbs", 3, 2, 0)).Encode()
	require.NoError(t, err)
	good.ID = 1
	bad := quiz.EncodedRecord{ID: 2, Payload: []byte(`[{"question":"x","choices":{"options":["a"],"correct_answer":"A"}}]`)}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got := AggregateEncoded(logger, []quiz.EncodedRecord{bad, good})

	assert.Equal(t, TopicStat{Topic: "Verbs", Correct: 3, Wrong: 2}, got["Verbs"])
	assert.Len(t, got, 1)
	assert.Contains(t, buf.String(), "record_id=2")
}
