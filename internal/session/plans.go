package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/store"
)

// PlanEntry is a stored plan with its row metadata.
type PlanEntry struct {
	ID        int64
	CreatedAt time.Time
	Plan      planner.Plan
}

// CreatePlan generates a plan, stores it and makes it active.
func (s *Service) CreatePlan(ctx context.Context, st *State, req planner.PlanRequest) (PlanEntry, error) {
	plan, err := s.planner.Generate(ctx, req)
	if err != nil {
		return PlanEntry{}, err
	}
	now := s.now()
	id, err := s.plans.Save(ctx, st.User, plan, now)
	if err != nil {
		return PlanEntry{}, fmt.Errorf("save plan: %w", err)
	}
	st.SetPlan(id, plan)
	s.log(st).Info("plan created", "plan_id", id, "topic", plan.Request.Topic, "days", len(plan.Schedule))
	return PlanEntry{ID: id, CreatedAt: now, Plan: plan}, nil
}

// LoadLatestPlan makes the newest stored plan active. It returns
// ErrNoActivePlan when the user has none.
func (s *Service) LoadLatestPlan(ctx context.Context, st *State) (PlanEntry, error) {
	rec, err := s.plans.Latest(ctx, st.User)
	if errors.Is(err, store.ErrNotFound) {
		return PlanEntry{}, ErrNoActivePlan
	}
	if err != nil {
		return PlanEntry{}, fmt.Errorf("load latest plan: %w", err)
	}
	return s.activate(st, rec)
}

// OpenPlan makes plan id active.
func (s *Service) OpenPlan(ctx context.Context, st *State, id int64) (PlanEntry, error) {
	rec, err := s.plans.Get(ctx, st.User, id)
	if err != nil {
		return PlanEntry{}, fmt.Errorf("open plan %d: %w", id, err)
	}
	return s.activate(st, rec)
}

func (s *Service) activate(st *State, rec store.BlobRecord) (PlanEntry, error) {
	entry, err := decodePlan(rec)
	if err != nil {
		return PlanEntry{}, err
	}
	st.SetPlan(entry.ID, entry.Plan)
	return entry, nil
}

// ListPlans returns the user's plans, newest first. Unreadable rows are
// logged and skipped.
func (s *Service) ListPlans(ctx context.Context, st *State) ([]PlanEntry, error) {
	recs, err := s.plans.List(ctx, st.User, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	out := make([]PlanEntry, 0, len(recs))
	for _, rec := range recs {
		entry, err := decodePlan(rec)
		if err != nil {
			s.log(st).Warn("skipping unreadable plan", "record_id", rec.ID, "error", err)
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// DeletePlan removes plan id, closing it if it was active.
func (s *Service) DeletePlan(ctx context.Context, st *State, id int64) error {
	if err := s.plans.Delete(ctx, st.User, id); err != nil {
		return fmt.Errorf("delete plan %d: %w", id, err)
	}
	if st.ActivePlanID == id {
		st.ClearPlan()
	}
	s.log(st).Info("plan deleted", "plan_id", id)
	return nil
}

func decodePlan(rec store.BlobRecord) (PlanEntry, error) {
	var p planner.Plan
	if err := rec.Decode(&p); err != nil {
		return PlanEntry{}, err
	}
	return PlanEntry{ID: rec.ID, CreatedAt: rec.CreatedAt, Plan: p}, nil
}
