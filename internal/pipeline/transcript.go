package pipeline

import (
	"fmt"
	"strings"

	"copilot.dev/backend/internal/model"
)

// formatTranscript renders the ordered interaction history plus the new,
// not-yet-appended observation into the single transcript string C4
// expects (spec.md §4.C9 step 2).
func formatTranscript(interactions []model.Interaction, newInput string) string {
	var b strings.Builder
	for i, in := range interactions {
		fmt.Fprintf(&b, "[%d] %s - seller: %s\n", i, in.Ts.Format("15:04:05"), in.UserInput)
	}
	fmt.Fprintf(&b, "[%d] seller: %s\n", len(interactions), newInput)
	return b.String()
}

// historyLines renders each prior interaction as a "seller: " line followed
// by its "assistant: " quick_response line (when present), most recent
// last, for the strategy generator's short conversational window.
func historyLines(interactions []model.Interaction) []string {
	lines := make([]string, 0, len(interactions))
	for _, in := range interactions {
		lines = append(lines, "seller: "+in.UserInput)
		if in.AIResponse.QuickResponse.Text != "" {
			lines = append(lines, "assistant: "+in.AIResponse.QuickResponse.Text)
		}
	}
	return lines
}
