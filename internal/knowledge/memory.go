package knowledge

import (
	"context"
	"sort"
	"sync"

	"copilot.dev/backend/internal/model"
)

// MemoryStore is an in-process Retriever used by pipeline and strategy
// generator tests so they don't depend on a live Typesense instance.
type MemoryStore struct {
	mu      sync.RWMutex
	nuggets map[string]model.KnowledgeNugget
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nuggets: make(map[string]model.KnowledgeNugget)}
}

func (m *MemoryStore) Search(_ context.Context, queryText, archetype, knowledgeType string, limit int) ([]model.ScoredNugget, error) {
	if limit <= 0 {
		limit = 3
	}
	queryVec := embed(queryText)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.ScoredNugget
	for _, n := range m.nuggets {
		if archetype != "" && n.Archetype != archetype {
			continue
		}
		if knowledgeType != "" && string(n.Type) != knowledgeType {
			continue
		}
		vec := n.EmbeddingVector
		if vec == nil {
			vec = embed(n.Content)
		}
		out = append(out, model.ScoredNugget{Nugget: n, SimilarityScore: cosineSimilarity(queryVec, vec)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SimilarityScore > out[j].SimilarityScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) BulkUpsert(_ context.Context, nuggets []model.KnowledgeNugget) ([]string, error) {
	nuggets = assignIDs(nuggets)

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(nuggets))
	for i, n := range nuggets {
		if n.EmbeddingVector == nil {
			n.EmbeddingVector = embed(n.Content)
		}
		m.nuggets[n.ID] = n
		ids[i] = n.ID
	}
	return ids, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.nuggets, id)
	return nil
}

func (m *MemoryStore) GetAll(_ context.Context, limit int) ([]model.KnowledgeNugget, error) {
	if limit <= 0 {
		limit = 50
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.KnowledgeNugget, 0, len(m.nuggets))
	for _, n := range m.nuggets {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Health(_ context.Context) (Health, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Health{Status: "ok", CollectionExists: true, DocumentCount: int64(len(m.nuggets))}, nil
}

var (
	_ Retriever = (*MemoryStore)(nil)
	_ Retriever = (*TypesenseStore)(nil)
)
