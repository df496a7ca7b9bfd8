package strategy

import (
	"fmt"
	"strings"

	"copilot.dev/backend/internal/model"
)

// formatKnowledgeContext renders RAG results into the "knowledge context"
// block spec.md §4.C8 step 1 describes: title, type, content, similarity
// as a percentage.
func formatKnowledgeContext(nuggets []model.ScoredNugget) string {
	if len(nuggets) == 0 {
		return ""
	}

	var b strings.Builder
	for _, n := range nuggets {
		fmt.Fprintf(&b, "- [%s / %s, %.0f%% match] %s\n", n.Nugget.Title, n.Nugget.Type, n.SimilarityScore*100, n.Nugget.Content)
	}
	return b.String()
}
