package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/eduwise/eduwise/internal/quiz"
)

// DateLayout is how plan dates are written in prompts, schedules and exports.
const DateLayout = "2006-01-02"

// Request bounds.
const (
	MinDailyMinutes     = 15
	MaxDailyMinutes     = 240
	DailyMinutesStep    = 15
	DefaultDurationDays = 14
	MaxDurationDays     = 365
)

// Level is the learner's self-assessed starting level.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Levels lists the accepted levels in form order.
var Levels = []Level{Beginner, Intermediate, Advanced}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", &quiz.ValidationError{Field: "level", Message: fmt.Sprintf("unknown level %q (want Beginner, Intermediate or Advanced)", s)}
}

// PlanRequest is what the learner asks a plan for.
type PlanRequest struct {
	Topic        string    `json:"topic"`
	Level        Level     `json:"level"`
	DailyMinutes int       `json:"daily_minutes"`
	StartDate    time.Time `json:"start_date"`
	DurationDays int       `json:"duration_days"`
}

// WithDefaults fills a zero duration with DefaultDurationDays and a zero
// start date with today.
func (r PlanRequest) WithDefaults(now time.Time) PlanRequest {
	if r.DurationDays == 0 {
		r.DurationDays = DefaultDurationDays
	}
	if r.StartDate.IsZero() {
		y, m, d := now.Date()
		r.StartDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	r.Topic = strings.TrimSpace(r.Topic)
	return r
}

// Validate checks every field is in range.
func (r PlanRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &quiz.ValidationError{Field: "topic", Message: "topic is required"}
	}
	if _, err := ParseLevel(string(r.Level)); err != nil {
		return err
	}
	if r.DailyMinutes < MinDailyMinutes || r.DailyMinutes > MaxDailyMinutes || r.DailyMinutes%DailyMinutesStep != 0 {
		return &quiz.ValidationError{Field: "daily_minutes", Message: fmt.Sprintf(
			"daily minutes must be %d-%d in steps of %d, got %d",
			MinDailyMinutes, MaxDailyMinutes, DailyMinutesStep, r.DailyMinutes)}
	}
	if r.StartDate.IsZero() {
		return &quiz.ValidationError{Field: "start_date", Message: "start date is required"}
	}
	if r.DurationDays < 1 || r.DurationDays > MaxDurationDays {
		return &quiz.ValidationError{Field: "duration_days", Message: fmt.Sprintf(
			"duration must be 1-%d days, got %d", MaxDurationDays, r.DurationDays)}
	}
	return nil
}

// TopicNode is a topic and its subtopics.
type TopicNode struct {
	Topic     string   `json:"topic"`
	Subtopics []string `json:"subtopics"`
}

// Link lists the topics that should be studied before Topic.
type Link struct {
	Topic         string   `json:"topic"`
	Prerequisites []string `json:"prerequisites"`
}

// LearningPath is the topic graph of a subject.
type LearningPath struct {
	Topics []TopicNode `json:"topics"`
	Links  []Link      `json:"links"`
}

// StudyDay is one entry of the day-by-day schedule.
type StudyDay struct {
	Day      int    `json:"day"`
	Date     string `json:"date"`
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
	Activity string `json:"activity"`
	Task     string `json:"task"`
	Review   bool   `json:"review"`
	Practice bool   `json:"practice"`
}

// Plan is a generated learning plan.
type Plan struct {
	Request   PlanRequest  `json:"request"`
	Path      LearningPath `json:"path"`
	Schedule  []StudyDay   `json:"schedule"`
	CreatedAt time.Time    `json:"created_at"`
}

// Day returns the schedule entry numbered n.
func (p Plan) Day(n int) (StudyDay, bool) {
	for _, d := range p.Schedule {
		if d.Day == n {
			return d, true
		}
	}
	return StudyDay{}, false
}

// TopicNames returns the path's topics in order.
func (p Plan) TopicNames() []string {
	out := make([]string, len(p.Path.Topics))
	for i, t := range p.Path.Topics {
		out[i] = t.Topic
	}
	return out
}
