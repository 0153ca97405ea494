package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eduwise/eduwise/internal/llm"
	"github.com/eduwise/eduwise/internal/quiz"
)

// Service generates learning plans in two LLM calls: the topic graph,
// then the schedule built on it.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a plan generation service. A nil logger uses
// slog.Default.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger, now: time.Now}
}

// Generate validates req, builds the learning path and then the schedule.
func (s *Service) Generate(ctx context.Context, req PlanRequest) (Plan, error) {
	req = req.WithDefaults(s.now())
	if err := req.Validate(); err != nil {
		return Plan{}, err
	}

	path, err := s.GeneratePath(ctx, req)
	if err != nil {
		return Plan{}, err
	}
	schedule, err := s.GenerateSchedule(ctx, req, path)
	if err != nil {
		return Plan{}, err
	}

	s.logger.Info("plan generated",
		"topic", req.Topic, "level", req.Level, "topics", len(path.Topics), "days", len(schedule))
	return Plan{
		Request:   req,
		Path:      path,
		Schedule:  schedule,
		CreatedAt: s.now().UTC(),
	}, nil
}

// GeneratePath asks for the topic graph of req.Topic.
func (s *Service) GeneratePath(ctx context.Context, req PlanRequest) (LearningPath, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePlanPath)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: pathSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPathMessage(req)},
		},
		Schema:      PathSchema,
		MaxTokens:   s.cfg.PathMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return LearningPath{}, fmt.Errorf("learning path generation: %w", err)
	}

	var path LearningPath
	if err := json.Unmarshal(resp.Content, &path); err != nil {
		return LearningPath{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse learning path: %w", err)}
	}
	path = cleanPath(path)
	if len(path.Topics) == 0 || len(path.Links) == 0 {
		return LearningPath{}, &quiz.ValidationError{Field: "path", Message: "could not build learning path: no topics or links returned"}
	}
	return path, nil
}

// GenerateSchedule asks for the day-by-day plan over path. Days are
// renumbered from 1 and dated from req.StartDate; entries past
// req.DurationDays are dropped.
func (s *Service) GenerateSchedule(ctx context.Context, req PlanRequest, path LearningPath) ([]StudyDay, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePlanSchedule)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: scheduleSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildScheduleMessage(req, path)},
		},
		Schema:      ScheduleSchema,
		MaxTokens:   s.cfg.ScheduleMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule generation: %w", err)
	}

	var out struct {
		Schedule []StudyDay `json:"schedule"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse schedule: %w", err)}
	}
	if len(out.Schedule) == 0 {
		return nil, &quiz.ValidationError{Field: "schedule", Message: "could not build study schedule: no days returned"}
	}

	days := out.Schedule
	if len(days) > req.DurationDays {
		days = days[:req.DurationDays]
	} else if len(days) < req.DurationDays {
		s.logger.Warn("short study schedule", "topic", req.Topic, "requested_days", req.DurationDays, "got", len(days))
	}
	for i := range days {
		days[i].Day = i + 1
		days[i].Date = req.StartDate.AddDate(0, 0, i).Format(DateLayout)
	}
	return days, nil
}

// cleanPath trims names and drops nameless topics and links.
func cleanPath(p LearningPath) LearningPath {
	var out LearningPath
	for _, t := range p.Topics {
		t.Topic = strings.TrimSpace(t.Topic)
		if t.Topic == "" {
			continue
		}
		out.Topics = append(out.Topics, t)
	}
	for _, l := range p.Links {
		l.Topic = strings.TrimSpace(l.Topic)
		if l.Topic == "" {
			continue
		}
		out.Links = append(out.Links, l)
	}
	return out
}
