package analysis

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	day1 := record(answers(t, "Verbs", 2, 1, 1))
	day1b := record(answers(t, "", 6, 0, 0))
	day2 := record(answers(t, "Nouns", 1, 0, 0))
	day2.CreatedAt = day1.CreatedAt.Add(24 * time.Hour)

	hard := answers(t, "Nouns", 0, 1, 0)
	hard[0].Difficulty = quiz.Hard
	day2.Questions = append(day2.Questions, hard...)
	day2.Wrong++

	d := BuildDashboard([]quiz.TestRecord{day1, day1b, day2}, rand.New(rand.NewPCG(1, 1)))

	assert.Equal(t, 3, d.Tests)
	assert.Equal(t, 9, d.Correct)
	assert.Equal(t, 2, d.Wrong)

	require.Len(t, d.Days, 2)
	// 3 answers * 15 = 45, plus 6 answers capped at 60.
	assert.Equal(t, 105, d.Days[0].Minutes)
	assert.Equal(t, 30, d.Days[1].Minutes)
	assert.Equal(t, DailyTargetMinutes, d.Days[0].Target)

	require.Len(t, d.Tiers, 3)
	assert.Equal(t, TierStat{Tier: quiz.Medium, Correct: 9, Wrong: 1}, d.Tiers[1])
	assert.Equal(t, TierStat{Tier: quiz.Hard, Correct: 0, Wrong: 1}, d.Tiers[2])
	assert.InDelta(t, 90.0, d.Tiers[1].SuccessRate(), 1e-9)
	assert.Zero(t, d.Tiers[0].SuccessRate())

	assert.Equal(t, []TopicTime{
		{Topic: UnknownTopic, Minutes: 12},
		{Topic: "Verbs", Minutes: 8},
		{Topic: "Nouns", Minutes: 4},
	}, d.TopicTimes)
	assert.NotEmpty(t, d.Quote)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(nil, nil)
	assert.Zero(t, d.Tests)
	assert.Empty(t, d.Days)
	assert.Len(t, d.Tiers, 3)
	assert.NotEmpty(t, d.Quote)
}
