package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/quiz"
)

// AnalyzeTopics runs the weighted-difficulty analysis over every stored
// result and keeps it on the state. Unreadable results are skipped.
func (s *Service) AnalyzeTopics(ctx context.Context, st *State) ([]analysis.TopicAnalysis, error) {
	recs, err := s.loadResults(ctx, st)
	if err != nil {
		return nil, err
	}
	a := analysis.AnalyzeRecords(s.log(st), recs, s.settings.MinAnswered)
	st.Analysis = a
	if len(a) == 0 || analysis.TotalWeight(a) <= 0 {
		return a, analysis.ErrNoWeights
	}
	return a, nil
}

// Dashboard summarises the user's results.
func (s *Service) Dashboard(ctx context.Context, st *State) (analysis.Dashboard, error) {
	recs, err := s.loadResults(ctx, st)
	if err != nil {
		return analysis.Dashboard{}, err
	}
	return analysis.BuildDashboard(analysis.Decode(s.log(st), recs), s.rand), nil
}

// History is the user's plans and results, newest first.
type History struct {
	Plans   []PlanEntry
	Results []quiz.TestRecord
}

// History loads plans and results. Unreadable rows are skipped.
func (s *Service) History(ctx context.Context, st *State) (History, error) {
	plans, err := s.ListPlans(ctx, st)
	if err != nil {
		return History{}, err
	}
	recs, err := s.loadResults(ctx, st)
	if err != nil {
		return History{}, err
	}
	results := analysis.Decode(s.log(st), recs)
	sort.SliceStable(results, func(i, j int) bool { return results[i].ID > results[j].ID })
	return History{Plans: plans, Results: results}, nil
}

// DeleteResult removes result id.
func (s *Service) DeleteResult(ctx context.Context, st *State, id int64) error {
	if err := s.results.Delete(ctx, st.User, id); err != nil {
		return fmt.Errorf("delete result %d: %w", id, err)
	}
	if st.LastResult != nil && st.LastResult.ID == id {
		st.LastResult = nil
	}
	st.Analysis = nil
	s.log(st).Info("result deleted", "result_id", id)
	return nil
}
