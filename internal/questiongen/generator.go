package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/llm"
	"github.com/eduwise/eduwise/internal/quiz"
)

// ErrNoQuestions is returned when a weighted run produced nothing because
// every drawn topic failed.
var ErrNoQuestions = errors.New("no questions could be generated")

// Generator produces multiple-choice questions through an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
	rand     *rand.Rand
}

// New creates a Generator. A nil logger uses slog.Default and a nil r uses
// the global random source.
func New(provider llm.Provider, cfg Config, logger *slog.Logger, r *rand.Rand) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, config: cfg, logger: logger, rand: r}
}

// GenerateForTopic asks for count questions about topic at the given tier.
func (g *Generator) GenerateForTopic(ctx context.Context, topic string, difficulty quiz.Difficulty, count int) ([]quiz.Question, error) {
	return g.Generate(ctx, Request{Topic: topic, Difficulty: difficulty, Count: count})
}

// Generate runs one LLM call for req. Each returned question has its
// options shuffled and is tagged with the topic and tier. Any malformed
// item fails the whole call.
func (g *Generator) Generate(ctx context.Context, req Request) ([]quiz.Question, error) {
	if err := req.validate(g.config.MaxPerRequest); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions for %q: %w", req.Topic, err)
	}

	var raw rawBatch
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse question batch: %w", err)}
	}
	if len(raw.Questions) > req.Count {
		raw.Questions = raw.Questions[:req.Count]
	} else if len(raw.Questions) < req.Count {
		g.logger.Warn("short question batch",
			"topic", req.Topic, "requested", req.Count, "got", len(raw.Questions))
	}

	difficulty := req.Difficulty.OrMedium()
	out := make([]quiz.Question, 0, len(raw.Questions))
	for i, item := range raw.Questions {
		set, err := quiz.Normalize(item.Options, item.CorrectAnswer, g.rand)
		if err != nil {
			return nil, fmt.Errorf("question %d for %q: %w", i+1, req.Topic, err)
		}
		q := quiz.Question{
			ID:          uuid.NewString(),
			Text:        item.Question,
			Choices:     set,
			Explanation: item.Explanation,
			Topic:       req.Topic,
			Difficulty:  difficulty,
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d for %q: %w", i+1, req.Topic, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// GenerateFromAnalysis draws n topics from the analysis weights and asks
// for each drawn topic's questions at its current tier, in requests of at
// most MaxPerRequest questions. A request that fails with a provider error
// is logged and listed in Batch.Failed; the rest of the batch is kept. Any
// other error, such as a malformed question, fails the whole run.
// ErrNoQuestions is returned, together with the failures, only when every
// request failed.
func (g *Generator) GenerateFromAnalysis(ctx context.Context, a []analysis.TopicAnalysis, n int) (Batch, error) {
	alloc, err := analysis.Sample(a, n, g.rand)
	if err != nil {
		return Batch{}, err
	}

	var batch Batch
	for _, tc := range alloc {
		var asked []string
		for remaining := tc.Count; remaining > 0; {
			count := remaining
			if limit := g.config.MaxPerRequest; limit > 0 && count > limit {
				count = limit
			}
			remaining -= count

			qs, err := g.Generate(ctx, Request{Topic: tc.Topic, Difficulty: tc.Difficulty, Count: count, Avoid: asked})
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return batch, ctxErr
				}
				if !llm.IsProviderError(err) {
					return batch, err
				}
				g.logger.Warn("topic generation failed",
					"topic", tc.Topic, "count", count, "error", err)
				batch.Failed = append(batch.Failed, TopicFailure{Topic: tc.Topic, Count: count, Err: err})
				continue
			}
			for _, q := range qs {
				asked = append(asked, q.Text)
			}
			batch.Questions = append(batch.Questions, qs...)
		}
	}

	g.logger.Info("weighted batch generated",
		"requested", n, "generated", len(batch.Questions), "failed_topics", len(batch.Failed))
	if len(batch.Questions) == 0 {
		return batch, ErrNoQuestions
	}
	return batch, nil
}
