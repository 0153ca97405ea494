package llm

// Not every vendor's structured-output mode accepts the full JSON Schema
// vocabulary. Requests keep the complete definition for local validation
// and send each vendor a copy without the keywords it rejects.

var (
	// anthropicUnsupported lists keywords Anthropic structured output rejects.
	anthropicUnsupported = []string{"minItems", "maxItems", "uniqueItems", "minLength", "maxLength", "minimum", "maximum"}

	// openAIUnsupported lists keywords OpenAI strict mode rejects.
	openAIUnsupported = []string{"uniqueItems", "minLength", "maxLength"}
)

// stripKeywords returns a deep copy of def without the given keywords at
// any depth. Property names are never stripped, only schema keywords.
func stripKeywords(def map[string]any, keywords []string) map[string]any {
	drop := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		drop[k] = true
	}
	return stripSchema(def, drop)
}

func stripSchema(def map[string]any, drop map[string]bool) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		if drop[k] {
			continue
		}
		switch k {
		case "properties":
			if props, ok := v.(map[string]any); ok {
				cp := make(map[string]any, len(props))
				for name, p := range props {
					if pm, ok := p.(map[string]any); ok {
						cp[name] = stripSchema(pm, drop)
					} else {
						cp[name] = p
					}
				}
				out[k] = cp
				continue
			}
		case "items":
			if im, ok := v.(map[string]any); ok {
				out[k] = stripSchema(im, drop)
				continue
			}
		}
		out[k] = v
	}
	return out
}
