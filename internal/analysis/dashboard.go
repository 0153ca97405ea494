package analysis

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/eduwise/eduwise/internal/quiz"
)

const (
	// MinutesPerAnswer is the study time credited per answered question
	// in the daily progress view.
	MinutesPerAnswer = 15

	// DailyTargetMinutes caps a single test's credited time and is the
	// daily goal line.
	DailyTargetMinutes = 60

	// MinutesPerQuestion estimates time spent per question by topic.
	MinutesPerQuestion = 2

	// UnknownTopic labels questions without a topic in time estimates.
	UnknownTopic = "unknown"
)

var quotes = []string{
	"Small steps every day add up to big results.",
	"Mistakes are proof that you are trying.",
	"The expert in anything was once a beginner.",
	"Consistency beats intensity.",
	"Learning never exhausts the mind.",
	"Focus on progress, not perfection.",
}

// DayProgress is the credited study time for one calendar day.
type DayProgress struct {
	Date    string
	Minutes int
	Target  int
}

// TierStat is the answer tally for one difficulty tier.
type TierStat struct {
	Tier    quiz.Difficulty
	Correct int
	Wrong   int
}

// SuccessRate is the percentage of correct answers, or 0 with no answers.
func (s TierStat) SuccessRate() float64 {
	if s.Correct+s.Wrong == 0 {
		return 0
	}
	return round(float64(s.Correct)/float64(s.Correct+s.Wrong)*100, 2)
}

// TopicTime is the estimated time spent on a topic.
type TopicTime struct {
	Topic   string
	Minutes int
}

// Dashboard summarises a user's test history.
type Dashboard struct {
	Tests      int
	Correct    int
	Wrong      int
	Days       []DayProgress
	Tiers      []TierStat
	TopicTimes []TopicTime
	Quote      string
}

// BuildDashboard folds records into the dashboard figures. r picks the
// quote; nil uses the global source.
func BuildDashboard(records []quiz.TestRecord, r *rand.Rand) Dashboard {
	d := Dashboard{Tests: len(records)}

	days := make(map[string]int)
	tiers := make(map[quiz.Difficulty]*TierStat, len(quiz.Difficulties))
	for _, t := range quiz.Difficulties {
		tiers[t] = &TierStat{Tier: t}
	}
	topics := make(map[string]int)

	for _, rec := range records {
		d.Correct += rec.Correct
		d.Wrong += rec.Wrong

		date := rec.CreatedAt.Local().Format("2006-01-02")
		days[date] += min(DailyTargetMinutes, MinutesPerAnswer*(rec.Correct+rec.Wrong))

		for _, q := range rec.Questions {
			topic := strings.TrimSpace(q.Topic)
			if topic == "" {
				topic = UnknownTopic
			}
			topics[topic] += MinutesPerQuestion

			if !q.Answered() {
				continue
			}
			ts := tiers[q.Difficulty.OrMedium()]
			if q.IsCorrect() {
				ts.Correct++
			} else {
				ts.Wrong++
			}
		}
	}

	for date, m := range days {
		d.Days = append(d.Days, DayProgress{Date: date, Minutes: m, Target: DailyTargetMinutes})
	}
	sort.Slice(d.Days, func(i, j int) bool { return d.Days[i].Date < d.Days[j].Date })

	for _, t := range quiz.Difficulties {
		d.Tiers = append(d.Tiers, *tiers[t])
	}

	for topic, m := range topics {
		d.TopicTimes = append(d.TopicTimes, TopicTime{Topic: topic, Minutes: m})
	}
	sort.Slice(d.TopicTimes, func(i, j int) bool {
		if d.TopicTimes[i].Minutes != d.TopicTimes[j].Minutes {
			return d.TopicTimes[i].Minutes > d.TopicTimes[j].Minutes
		}
		return d.TopicTimes[i].Topic < d.TopicTimes[j].Topic
	})

	if r != nil {
		d.Quote = quotes[r.IntN(len(quotes))]
	} else {
		d.Quote = quotes[rand.IntN(len(quotes))]
	}
	return d
}
