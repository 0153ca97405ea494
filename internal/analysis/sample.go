package analysis

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/eduwise/eduwise/internal/quiz"
)

// ErrNoWeights is returned when there is nothing to draw from: no topic
// qualified for analysis, or every qualifying topic is mastered.
var ErrNoWeights = errors.New("no topic has a positive weight")

// TopicCount is the number of questions to generate for a topic and the
// tier to request them at.
type TopicCount struct {
	Topic      string
	Count      int
	Difficulty quiz.Difficulty
}

// Allocation lists drawn topics in analysis order. Topics that were never
// drawn are absent.
type Allocation []TopicCount

// Total is the number of draws.
func (a Allocation) Total() int {
	n := 0
	for _, tc := range a {
		n += tc.Count
	}
	return n
}

// Counts returns the allocation as a topic to count map.
func (a Allocation) Counts() map[string]int {
	m := make(map[string]int, len(a))
	for _, tc := range a {
		m[tc.Topic] = tc.Count
	}
	return m
}

// Sample makes n independent draws from analysis, each topic chosen with
// probability proportional to its weight, and tallies them. Weights are
// treated as relative, so rounding drift does not matter. A nil r uses the
// global source.
func Sample(analysis []TopicAnalysis, n int, r *rand.Rand) (Allocation, error) {
	if n < 1 {
		return nil, &quiz.ValidationError{Field: "count", Message: fmt.Sprintf("question count must be positive, got %d", n)}
	}

	cumulative := make([]float64, len(analysis))
	var total float64
	for i, t := range analysis {
		if t.Weight > 0 {
			total += t.Weight
		}
		cumulative[i] = total
	}
	if total <= 0 {
		return nil, ErrNoWeights
	}

	float := rand.Float64
	if r != nil {
		float = r.Float64
	}

	counts := make([]int, len(analysis))
	for range n {
		pick := float() * total
		i := 0
		for i < len(cumulative)-1 && pick >= cumulative[i] {
			i++
		}
		counts[i]++
	}

	var out Allocation
	for i, t := range analysis {
		if counts[i] == 0 {
			continue
		}
		out = append(out, TopicCount{
			Topic:      t.Topic,
			Count:      counts[i],
			Difficulty: t.Difficulty.OrMedium(),
		})
	}
	return out, nil
}
