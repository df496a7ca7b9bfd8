package psychology

import "copilot.dev/backend/internal/llmparse"

// extractJSON locates the outermost balanced {...} object in text, per
// spec.md §4.C4 step 3.
func extractJSON(text string) (string, bool) {
	return llmparse.ExtractJSON(text)
}
