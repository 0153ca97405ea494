package analysis

import (
	"math/rand/v2"
	"testing"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_SingleTopic(t *testing.T) {
	a := []TopicAnalysis{{Topic: "Verbs", SuccessRate: 40, Difficulty: quiz.Easy, Weight: 1}}
	r := rand.New(rand.NewPCG(1, 2))

	for _, n := range []int{1, 7, 50} {
		got, err := Sample(a, n, r)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Verbs": n}, got.Counts())
		assert.Equal(t, quiz.Easy, got[0].Difficulty)
	}
}

func TestSample_TotalAndDistribution(t *testing.T) {
	a := []TopicAnalysis{
		{Topic: "Verbs", Weight: 0.875, Difficulty: quiz.Easy},
		{Topic: "Nouns", Weight: 0.125, Difficulty: quiz.Hard},
	}
	r := rand.New(rand.NewPCG(42, 42))

	got, err := Sample(a, 4000, r)
	require.NoError(t, err)
	assert.Equal(t, 4000, got.Total())

	counts := got.Counts()
	assert.InDelta(t, 3500, counts["Verbs"], 150)
	assert.InDelta(t, 500, counts["Nouns"], 150)
}

func TestSample_ZeroWeightNeverDrawn(t *testing.T) {
	a := []TopicAnalysis{
		{Topic: "weak", Weight: 1},
		{Topic: "mastered", Weight: 0},
	}
	got, err := Sample(a, 500, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"weak": 500}, got.Counts())
}

func TestSample_UnnormalizedWeights(t *testing.T) {
	a := []TopicAnalysis{{Topic: "a", Weight: 0.333}, {Topic: "b", Weight: 0.333}, {Topic: "c", Weight: 0.333}}
	got, err := Sample(a, 30, rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)
	assert.Equal(t, 30, got.Total())
}

func TestSample_Errors(t *testing.T) {
	_, err := Sample([]TopicAnalysis{{Topic: "a", Weight: 0}}, 10, nil)
	assert.ErrorIs(t, err, ErrNoWeights)

	_, err = Sample(nil, 10, nil)
	assert.ErrorIs(t, err, ErrNoWeights)

	_, err = Sample([]TopicAnalysis{{Topic: "a", Weight: 1}}, 0, nil)
	var ve *quiz.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSample_DefaultsDifficulty(t *testing.T) {
	got, err := Sample([]TopicAnalysis{{Topic: "a", Weight: 1}}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, quiz.Medium, got[0].Difficulty)
}
