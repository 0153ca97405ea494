package analysis

import (
	"log/slog"
	"math"
	"sort"

	"github.com/eduwise/eduwise/internal/quiz"
)

// DefaultMinAnswered is the number of answered questions a topic needs
// before it is analyzed.
const DefaultMinAnswered = 5

// TopicAnalysis is the analyzer's verdict for one topic.
type TopicAnalysis struct {
	Topic string `json:"topic"`

	// SuccessRate is a percentage rounded to 2 decimals.
	SuccessRate float64 `json:"success_rate"`

	// Difficulty is the tier to request for new questions on this topic.
	Difficulty quiz.Difficulty `json:"difficulty"`

	// Weight is this topic's share of a weighted draw, rounded to 3
	// decimals. All weights are 0 when every topic is fully mastered.
	Weight float64 `json:"weight"`

	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// TierFor maps a success percentage to a difficulty tier: mastered topics
// get harder questions, weak ones easier.
func TierFor(successRate float64) quiz.Difficulty {
	switch {
	case successRate >= 80:
		return quiz.Hard
	case successRate >= 50:
		return quiz.Medium
	default:
		return quiz.Easy
	}
}

// Analyze turns per-topic stats into analyses sorted weakest first, ties
// broken by topic name. Topics with fewer than minAnswered answers are left
// out. A topic with no answers at all is always left out, so minAnswered < 1
// keeps every answered topic.
func Analyze(stats map[string]TopicStat, minAnswered int) []TopicAnalysis {
	type entry struct {
		TopicAnalysis
		inverse float64
	}
	var (
		entries      []entry
		totalInverse float64
	)
	for topic, st := range stats {
		total := st.Total()
		if total == 0 || total < minAnswered {
			continue
		}
		frac := float64(st.Correct) / float64(total)
		rate := round(frac*100, 2)
		e := entry{
			TopicAnalysis: TopicAnalysis{
				Topic:       topic,
				SuccessRate: rate,
				Difficulty:  TierFor(rate),
				Correct:     st.Correct,
				Wrong:       st.Wrong,
			},
			inverse: 1 - frac,
		}
		totalInverse += e.inverse
		entries = append(entries, e)
	}

	out := make([]TopicAnalysis, len(entries))
	for i, e := range entries {
		if totalInverse > 0 {
			e.Weight = round(e.inverse/totalInverse, 3)
		}
		out[i] = e.TopicAnalysis
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SuccessRate != out[j].SuccessRate {
			return out[i].SuccessRate < out[j].SuccessRate
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

// AnalyzeRecords aggregates stored records and analyzes the result.
func AnalyzeRecords(logger *slog.Logger, records []quiz.EncodedRecord, minAnswered int) []TopicAnalysis {
	return Analyze(AggregateEncoded(logger, records), minAnswered)
}

// TotalWeight sums the weights of a.
func TotalWeight(a []TopicAnalysis) float64 {
	var sum float64
	for _, t := range a {
		sum += t.Weight
	}
	return sum
}

// Mastered reports whether a is non-empty and every topic sits at 100%.
func Mastered(a []TopicAnalysis) bool {
	if len(a) == 0 {
		return false
	}
	for _, t := range a {
		if t.SuccessRate < 100 {
			return false
		}
	}
	return true
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
