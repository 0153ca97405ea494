package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a teacher writing multiple-choice practice questions.

Rules:
- Write exactly the number of questions requested, all about the given topic.
- Every question has exactly 4 options and exactly one of them is correct.
- Options must be distinct. Do not prefix them with letters or numbers.
- Give the correct option as its position: A, B, C or D.
- Distractors should reflect common mistakes, not obviously wrong values.
- Match the requested difficulty: easy checks recall, medium checks understanding, hard checks application.
- The explanation says briefly why the correct option is right.
- Respond only with JSON matching the schema.`

// buildUserMessage describes one topic request for the prompt.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	if req.Subtopic != "" {
		fmt.Fprintf(&b, "Subtopic: %s\n", req.Subtopic)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty.OrMedium())
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)

	b.WriteString("\nAvoid repeating these questions:\n")
	b.WriteString(buildAvoid(req.Avoid, maxAvoid))

	return b.String()
}

const maxAvoid = 10

// buildAvoid lists the most recent questions to steer away from.
func buildAvoid(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
