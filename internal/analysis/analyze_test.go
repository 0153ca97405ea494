package analysis

import (
	"testing"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		rate float64
		want quiz.Difficulty
	}{
		{100, quiz.Hard},
		{80, quiz.Hard},
		{79.99, quiz.Medium},
		{50, quiz.Medium},
		{49.99, quiz.Easy},
		{0, quiz.Easy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.rate), "rate %v", tt.rate)
	}
}

func TestAnalyze_VerbsAndNouns(t *testing.T) {
	records := []quiz.TestRecord{
		record(answers(t, "Verbs", 3, 7, 0), answers(t, "Nouns", 9, 1, 0)),
	}

	got := Analyze(Aggregate(records), 5)

	require.Len(t, got, 2)
	assert.Equal(t, "Verbs", got[0].Topic)
	assert.InDelta(t, 30.0, got[0].SuccessRate, 1e-9)
	assert.Equal(t, quiz.Easy, got[0].Difficulty)
	assert.InDelta(t, 0.875, got[0].Weight, 1e-9)

	assert.Equal(t, "Nouns", got[1].Topic)
	assert.InDelta(t, 90.0, got[1].SuccessRate, 1e-9)
	assert.Equal(t, quiz.Hard, got[1].Difficulty)
	assert.InDelta(t, 0.125, got[1].Weight, 1e-9)
}

func TestAnalyze_Threshold(t *testing.T) {
	stats := map[string]TopicStat{
		"below": {Topic: "below", Correct: 2, Wrong: 2},
		"at":    {Topic: "at", Correct: 2, Wrong: 3},
	}

	got := Analyze(stats, 5)

	require.Len(t, got, 1)
	assert.Equal(t, "at", got[0].Topic)
	assert.InDelta(t, 1.0, got[0].Weight, 1e-9)
}

func TestAnalyze_ZeroThresholdKeepsAnsweredTopics(t *testing.T) {
	stats := map[string]TopicStat{
		"t":     {Topic: "t", Correct: 1, Wrong: 3},
		"empty": {Topic: "empty"},
	}

	for _, minAnswered := range []int{0, -1} {
		got := Analyze(stats, minAnswered)
		require.Len(t, got, 1, "minAnswered=%d", minAnswered)
		assert.Equal(t, "t", got[0].Topic)
		assert.Equal(t, 25.0, got[0].SuccessRate)
		assert.InDelta(t, 1.0, got[0].Weight, 1e-9)
	}
	assert.Empty(t, Analyze(stats, DefaultMinAnswered))
}

func TestAnalyze_AllMastered(t *testing.T) {
	stats := map[string]TopicStat{
		"a": {Topic: "a", Correct: 6},
		"b": {Topic: "b", Correct: 12},
	}

	got := Analyze(stats, 5)

	require.Len(t, got, 2)
	for _, a := range got {
		assert.Zero(t, a.Weight, a.Topic)
		assert.Equal(t, quiz.Hard, a.Difficulty)
	}
	assert.True(t, Mastered(got))
}

func TestAnalyze_WeightsSumToOne(t *testing.T) {
	stats := map[string]TopicStat{
		"a": {Topic: "a", Correct: 1, Wrong: 6},
		"b": {Topic: "b", Correct: 5, Wrong: 5},
		"c": {Topic: "c", Correct: 7, Wrong: 2},
		"d": {Topic: "d", Correct: 11},
		"e": {Topic: "e", Correct: 2, Wrong: 9},
	}

	got := Analyze(stats, 5)

	require.Len(t, got, 5)
	assert.InDelta(t, 1.0, TotalWeight(got), 0.01)
	assert.False(t, Mastered(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].SuccessRate, got[i].SuccessRate)
	}
}

func TestAnalyze_TiesSortByName(t *testing.T) {
	stats := map[string]TopicStat{
		"zeta":  {Topic: "zeta", Correct: 5, Wrong: 5},
		"alpha": {Topic: "alpha", Correct: 5, Wrong: 5},
	}
	got := Analyze(stats, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Topic)
	assert.Equal(t, "zeta", got[1].Topic)
}
