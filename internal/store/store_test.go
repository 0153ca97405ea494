package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Plans().Save(context.Background(), "u1", map[string]string{"topic": "go"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	recs, err := s.Plans().List(context.Background(), "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestPragmasApplied(t *testing.T) {
	db := openTestStore(t).drv.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestBlobRepo(t *testing.T) {
	s := openTestStore(t)
	plans := s.Plans()
	ctx := context.Background()

	_, err := plans.Latest(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	id1, err := plans.Save(ctx, "u1", map[string]any{"topic": "verbs"}, t0)
	require.NoError(t, err)
	id2, err := plans.Save(ctx, "u1", map[string]any{"topic": "nouns"}, t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = plans.Save(ctx, "u2", map[string]any{"topic": "other"}, t0)
	require.NoError(t, err)

	latest, err := plans.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, id2, latest.ID)
	assert.Equal(t, t0.Add(time.Hour), latest.CreatedAt)

	var payload struct{ Topic string }
	require.NoError(t, latest.Decode(&payload))
	assert.Equal(t, "nouns", payload.Topic)

	list, err := plans.List(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id2, list[0].ID)
	assert.Equal(t, id1, list[1].ID)

	_, err = plans.Get(ctx, "u2", id1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, plans.Delete(ctx, "u2", id1), ErrNotFound)
	require.NoError(t, plans.Delete(ctx, "u1", id1))
	list, err = plans.List(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Tests live in their own table.
	tests, err := s.Tests().List(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestBlobRepo_RejectsEmptyUser(t *testing.T) {
	_, err := openTestStore(t).Tests().Save(context.Background(), " ", []int{1}, time.Now())
	var pe *PersistenceError
	assert.True(t, errors.As(err, &pe))
}

func sampleRecord(t *testing.T, user string, answer quiz.Label) quiz.TestRecord {
	t.Helper()
	set, err := quiz.NewOptionSet([]string{"run", "table", "blue", "slowly"}, quiz.LabelA)
	require.NoError(t, err)
	q := quiz.Question{Text: "Which is a verb?", Choices: set, Topic: "Verbs", Difficulty: quiz.Easy}
	rec, err := quiz.Grade(user, []quiz.Question{q, q}, map[int]quiz.Label{0: answer}, time.Now())
	require.NoError(t, err)
	return rec
}

func TestResultRepo(t *testing.T) {
	s := openTestStore(t)
	results := s.Results()
	ctx := context.Background()

	id1, err := results.Save(ctx, sampleRecord(t, "u1", quiz.LabelA))
	require.NoError(t, err)
	_, err = results.Save(ctx, sampleRecord(t, "u1", quiz.LabelC))
	require.NoError(t, err)

	list, err := results.List(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID, "results come back oldest first")
	assert.Equal(t, 1, list[0].Correct)
	assert.Equal(t, 1, list[1].Wrong)

	rec, err := list[1].Decode()
	require.NoError(t, err)
	assert.Equal(t, quiz.LabelC, rec.Questions[0].UserAnswer)
	assert.False(t, rec.Questions[1].Answered())

	require.NoError(t, results.Delete(ctx, "u1", id1))
	list, err = results.List(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResultRepo_ValidatesBeforeInsert(t *testing.T) {
	rec := sampleRecord(t, "u1", quiz.LabelA)
	rec.Correct = 2

	_, err := openTestStore(t).Results().Save(context.Background(), rec)
	var ve *quiz.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestLLMEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{RequestID: "r1", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "{}"},
		{RequestID: "r2", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 400, Success: true},
		{RequestID: "r3", Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "plan-path", LatencyMs: 30, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r3", list[0].RequestID)
	assert.False(t, list[0].Success)

	got, err := repo.GetLLMEvent(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "r2", got.RequestID)

	_, err = repo.GetLLMEvent(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "question-gen", Calls: 2, InputTokens: 110, OutputTokens: 55, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gemini-2.5-flash", byModel[0].Model)
}
