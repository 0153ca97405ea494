// Package analysis folds submitted tests into per-topic performance,
// weights weak topics and draws topic allocations for follow-up tests.
package analysis

import (
	"log/slog"
	"strings"

	"github.com/eduwise/eduwise/internal/quiz"
)

// GeneralTopic buckets questions that carry no topic.
const GeneralTopic = "general"

// TopicStat is the number of correct and wrong answers for one topic.
type TopicStat struct {
	Topic   string
	Correct int
	Wrong   int
}

// Total is the number of answered questions.
func (s TopicStat) Total() int { return s.Correct + s.Wrong }

// Aggregate counts correct and wrong answers per topic over every answered
// question in records. Unanswered questions are ignored.
func Aggregate(records []quiz.TestRecord) map[string]TopicStat {
	stats := make(map[string]TopicStat)
	for _, rec := range records {
		for _, q := range rec.Questions {
			if !q.Answered() {
				continue
			}
			topic := strings.TrimSpace(q.Topic)
			if topic == "" {
				topic = GeneralTopic
			}
			st := stats[topic]
			st.Topic = topic
			if q.IsCorrect() {
				st.Correct++
			} else {
				st.Wrong++
			}
			stats[topic] = st
		}
	}
	return stats
}

// Decode decodes stored records, logging and dropping the ones whose
// payload cannot be parsed.
func Decode(logger *slog.Logger, records []quiz.EncodedRecord) []quiz.TestRecord {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]quiz.TestRecord, 0, len(records))
	for _, enc := range records {
		rec, err := enc.Decode()
		if err != nil {
			logger.Warn("skipping unreadable test result", "record_id", enc.ID, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// AggregateEncoded is Aggregate over stored records.
func AggregateEncoded(logger *slog.Logger, records []quiz.EncodedRecord) map[string]TopicStat {
	return Aggregate(Decode(logger, records))
}
