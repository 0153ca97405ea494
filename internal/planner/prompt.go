package planner

import (
	"fmt"
	"strings"
)

const pathSystemPrompt = `You are a curriculum designer. Given a subject and a learner level, list every core topic that must be learned, each with its subtopics, in learning order, and state which topics must be learned before which.

Rules:
- Topics are short names, subtopics are concrete.
- Prerequisites only name topics from your own list.
- Respond only with JSON matching the schema.`

const scheduleSystemPrompt = `You are a study coach. Given a topic graph and the learner's time budget, write a day-by-day study schedule.

Rules:
- One entry per day, numbered from 1, dated consecutively from the start date.
- Follow the prerequisite order.
- Each day names a topic and subtopic from the graph, an activity type (video, reading, quiz, review or practice) and a concrete task that fits the daily time budget.
- Mark whether the day includes review of earlier material and whether it includes solving questions.
- Respond only with JSON matching the schema.`

func buildPathMessage(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", req.Topic)
	fmt.Fprintf(&b, "Level: %s\n", req.Level)
	return b.String()
}

func buildScheduleMessage(req PlanRequest, path LearningPath) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", req.Topic)
	fmt.Fprintf(&b, "Level: %s\n", req.Level)
	fmt.Fprintf(&b, "Daily study time: %d minutes\n", req.DailyMinutes)
	fmt.Fprintf(&b, "Start date: %s\n", req.StartDate.Format(DateLayout))
	fmt.Fprintf(&b, "Duration: %d days\n", req.DurationDays)

	b.WriteString("\nTopics:\n")
	for _, t := range path.Topics {
		fmt.Fprintf(&b, "- %s", t.Topic)
		if len(t.Subtopics) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(t.Subtopics, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nPrerequisites:\n")
	wrote := false
	for _, l := range path.Links {
		if len(l.Prerequisites) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s <- %s\n", l.Topic, strings.Join(l.Prerequisites, ", "))
		wrote = true
	}
	if !wrote {
		b.WriteString("None\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
