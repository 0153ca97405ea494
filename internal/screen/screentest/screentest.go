// Package screentest builds a working screen.Env for screen tests: a real
// SQLite store in a temp dir and a mock LLM provider.
package screentest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/eduwise/eduwise/internal/llm"
	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/questiongen"
	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/session"
	"github.com/eduwise/eduwise/internal/store"
)

// Fixture is an Env plus handles for queueing LLM output.
type Fixture struct {
	Env   *screen.Env
	Mock  *llm.MockProvider
	Store *store.Store
}

// New builds a Fixture for user "tester".
func New(t *testing.T) *Fixture {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockProvider()
	r := rand.New(rand.NewPCG(11, 13))
	svc := session.NewService(session.Deps{
		Plans:     s.Plans(),
		Tests:     s.Tests(),
		Results:   s.Results(),
		Planner:   planner.NewService(mock, planner.DefaultConfig(), nil),
		Questions: questiongen.New(mock, questiongen.DefaultConfig(), nil, r),
		Settings:  session.Settings{DayQuestionCount: 3, TopicQuestionCount: 3, WeightedQuestionCount: 4},
		Rand:      r,
	})
	return &Fixture{
		Env: &screen.Env{
			Service:   svc,
			State:     session.NewState("tester"),
			ExportDir: t.TempDir(),
		},
		Mock:  mock,
		Store: s,
	}
}

// QueueQuestions queues one question batch of n items on topic. The
// correct answer is always the option "right".
func (f *Fixture) QueueQuestions(topic string, n int) {
	items := make([]any, n)
	for i := range n {
		items[i] = map[string]any{
			"question":       fmt.Sprintf("%s question %d?", topic, i+1),
			"options":        []string{"right", "wrong one", "wrong two", "wrong three"},
			"correct_answer": "A",
			"explanation":    "right is right",
		}
	}
	f.Mock.AddResponse(llm.MockJSON(map[string]any{"questions": items}))
}

// QueuePlan queues a learning path and a schedule of days days on topic.
func (f *Fixture) QueuePlan(topic string, days int) {
	f.Mock.AddResponse(llm.MockJSON(map[string]any{
		"topics": []any{map[string]any{"topic": topic, "subtopics": []string{"Basics"}}},
		"links":  []any{map[string]any{"topic": topic, "prerequisites": []string{}}},
	}))
	schedule := make([]any, days)
	for i := range days {
		schedule[i] = map[string]any{
			"day": i + 1, "date": "", "topic": topic, "subtopic": "Basics",
			"activity": "reading", "task": fmt.Sprintf("task %d", i+1), "review": false, "practice": true,
		}
	}
	f.Mock.AddResponse(llm.MockJSON(map[string]any{"schedule": schedule}))
}

// CreatePlan stores a plan on topic and makes it active.
func (f *Fixture) CreatePlan(t *testing.T, topic string, days int) session.PlanEntry {
	t.Helper()
	f.QueuePlan(topic, days)
	entry, err := f.Env.Service.CreatePlan(context.Background(), f.Env.State, planner.PlanRequest{
		Topic:        topic,
		Level:        planner.Beginner,
		DailyMinutes: 30,
		StartDate:    time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		DurationDays: days,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return entry
}

// SubmitResult generates a topic test on topic, answers correct questions
// right and the rest wrong, and submits it.
func (f *Fixture) SubmitResult(t *testing.T, topic string, correct, wrong int) quiz.TestRecord {
	t.Helper()
	f.QueueQuestions(topic, correct+wrong)
	ctx := context.Background()
	st := f.Env.State
	if _, err := f.Env.Service.GenerateTopicTest(ctx, st, topic, quiz.Medium, correct+wrong); err != nil {
		t.Fatalf("generate test: %v", err)
	}
	for i, q := range st.ActiveBatch {
		l := q.Choices.Correct()
		if i >= correct {
			l = quiz.Labels[(l.Index()+1)%quiz.OptionCount]
		}
		if err := st.Answer(i, l); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	rec, err := f.Env.Service.SubmitTest(ctx, st)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return rec
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a named key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of s to scr.
func Type(scr screen.Screen, s string) screen.Screen {
	for _, r := range s {
		scr, _ = scr.Update(Key(r))
	}
	return scr
}

// Drain runs cmd and feeds resulting messages back into scr until no
// command is left, expanding batches. It returns every message produced,
// in order, so tests can look for router navigation. Cursor blink
// messages are dropped.
func Drain(scr screen.Screen, cmd tea.Cmd) (screen.Screen, []tea.Msg) {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 100; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := run(c)
		if msg == nil || isBlink(msg) {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		out = append(out, msg)
		var next tea.Cmd
		scr, next = scr.Update(msg)
		queue = append(queue, next)
	}
	return scr, out
}

// Find returns the first message of type T in msgs.
func Find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func run(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		return nil
	}
}

func isBlink(msg tea.Msg) bool {
	name := fmt.Sprintf("%T", msg)
	return strings.HasPrefix(name, "cursor.") || strings.HasPrefix(name, "textinput.")
}
