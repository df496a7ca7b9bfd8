package knowledge

import (
	"context"
	"errors"

	"copilot.dev/backend/internal/model"
	"github.com/google/uuid"
)

// ErrDimensionMismatch is returned by BulkUpsert when the configured
// collection dimension doesn't match the fixed embedding size.
var ErrDimensionMismatch = errors.New("knowledge: vector dimension mismatch")

// Retriever is the Knowledge Retriever (C2) contract spec.md §4.C2 defines.
type Retriever interface {
	Search(ctx context.Context, queryText, archetype, knowledgeType string, limit int) ([]model.ScoredNugget, error)
	BulkUpsert(ctx context.Context, nuggets []model.KnowledgeNugget) ([]string, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context, limit int) ([]model.KnowledgeNugget, error)
	Health(ctx context.Context) (Health, error)
}

// assignIDs fills in missing nugget IDs with fresh UUIDs, per spec.md
// §4.C2's "generate UUID ids" requirement.
func assignIDs(nuggets []model.KnowledgeNugget) []model.KnowledgeNugget {
	out := make([]model.KnowledgeNugget, len(nuggets))
	for i, n := range nuggets {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		out[i] = n
	}
	return out
}
