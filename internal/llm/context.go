package llm

import "context"

// Purposes recorded with each logged provider call.
const (
	PurposePlanPath     = "plan-path"
	PurposePlanSchedule = "plan-schedule"
	PurposeQuestionGen  = "question-gen"

	purposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx with the step a provider call belongs to. The
// logging provider stores the tag with each request event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeUnknown
}
