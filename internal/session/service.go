package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/questiongen"
	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/store"
)

var (
	// ErrNoActivePlan is returned by actions that need an open plan.
	ErrNoActivePlan = errors.New("no active plan")

	// ErrNoActiveBatch is returned when submitting without a test.
	ErrNoActiveBatch = errors.New("no active test")
)

// BlobStore persists JSON documents per user. *store.BlobRepo implements it.
type BlobStore interface {
	Save(ctx context.Context, user string, v any, at time.Time) (int64, error)
	Latest(ctx context.Context, user string) (store.BlobRecord, error)
	Get(ctx context.Context, user string, id int64) (store.BlobRecord, error)
	List(ctx context.Context, user string, opts store.QueryOpts) ([]store.BlobRecord, error)
	Delete(ctx context.Context, user string, id int64) error
}

// ResultStore persists submitted tests. *store.ResultRepo implements it.
type ResultStore interface {
	Save(ctx context.Context, rec quiz.TestRecord) (int64, error)
	List(ctx context.Context, user string, opts store.QueryOpts) ([]quiz.EncodedRecord, error)
	Delete(ctx context.Context, user string, id int64) error
}

// PlanGenerator builds learning plans. *planner.Service implements it.
type PlanGenerator interface {
	Generate(ctx context.Context, req planner.PlanRequest) (planner.Plan, error)
}

// QuestionGenerator builds question batches. *questiongen.Generator
// implements it.
type QuestionGenerator interface {
	Generate(ctx context.Context, req questiongen.Request) ([]quiz.Question, error)
	GenerateFromAnalysis(ctx context.Context, a []analysis.TopicAnalysis, n int) (questiongen.Batch, error)
}

// Settings are the tunables of the service.
type Settings struct {
	MinAnswered           int
	WeightedQuestionCount int
	DayQuestionCount      int
	TopicQuestionCount    int
}

// DefaultSettings returns the standard tunables.
func DefaultSettings() Settings {
	return Settings{
		MinAnswered:           analysis.DefaultMinAnswered,
		WeightedQuestionCount: 10,
		DayQuestionCount:      40,
		TopicQuestionCount:    10,
	}
}

// Deps wires a Service.
type Deps struct {
	Plans     BlobStore
	Tests     BlobStore
	Results   ResultStore
	Planner   PlanGenerator
	Questions QuestionGenerator
	Settings  Settings
	Logger    *slog.Logger
	Rand      *rand.Rand
	Now       func() time.Time
}

// Service runs the user actions shared by the TUI and the CLI. It holds no
// per-user state; every action takes the caller's *State.
type Service struct {
	plans     BlobStore
	tests     BlobStore
	results   ResultStore
	planner   PlanGenerator
	questions QuestionGenerator
	settings  Settings
	logger    *slog.Logger
	rand      *rand.Rand
	now       func() time.Time
}

// NewService creates a Service. Zero settings fall back to the defaults.
func NewService(d Deps) *Service {
	s := &Service{
		plans:     d.Plans,
		tests:     d.Tests,
		results:   d.Results,
		planner:   d.Planner,
		questions: d.Questions,
		settings:  d.Settings,
		logger:    d.Logger,
		rand:      d.Rand,
		now:       d.Now,
	}
	def := DefaultSettings()
	if s.settings.MinAnswered < 1 {
		s.settings.MinAnswered = def.MinAnswered
	}
	if s.settings.WeightedQuestionCount < 1 {
		s.settings.WeightedQuestionCount = def.WeightedQuestionCount
	}
	if s.settings.DayQuestionCount < 1 {
		s.settings.DayQuestionCount = def.DayQuestionCount
	}
	if s.settings.TopicQuestionCount < 1 {
		s.settings.TopicQuestionCount = def.TopicQuestionCount
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Settings returns the effective tunables.
func (s *Service) Settings() Settings { return s.settings }

func (s *Service) log(st *State) *slog.Logger {
	return s.logger.With("session_id", st.ID, "user", st.User)
}

// loadResults lists every stored result of st.User, oldest first.
func (s *Service) loadResults(ctx context.Context, st *State) ([]quiz.EncodedRecord, error) {
	recs, err := s.results.List(ctx, st.User, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return recs, nil
}
