package knowledge

import (
	"context"
	"testing"
	"time"

	"copilot.dev/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestBulkUpsertThenSearchRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	nugget := model.KnowledgeNugget{
		Content:   "For fleet buyers, lead with total cost of ownership and service-plan transparency.",
		Title:     "Fleet TCO pitch",
		Type:      model.KnowledgePricing,
		Archetype: string(model.ArchetypeFleetManager),
		Source:    "dojo",
		CreatedAt: time.Now(),
	}

	ids, err := store.BulkUpsert(ctx, []model.KnowledgeNugget{nugget})
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.NotEmpty(t, ids[0])

	results, err := store.Search(ctx, nugget.Content, "", "", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, ids[0], results[0].Nugget.ID)
	require.GreaterOrEqual(t, results[0].SimilarityScore, 0.7)
}

func TestSearchFiltersByArchetype(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, []model.KnowledgeNugget{
		{Content: "Safety ratings matter for parents.", Archetype: string(model.ArchetypeFamilyGuardian), Type: model.KnowledgeProduct},
		{Content: "Fleet discounts apply above 10 vehicles.", Archetype: string(model.ArchetypeFleetManager), Type: model.KnowledgePricing},
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "discount fleet", string(model.ArchetypeFleetManager), "", 5)
	require.NoError(t, err)
	for _, r := range results {
		require.Equal(t, string(model.ArchetypeFleetManager), r.Nugget.Archetype)
	}
}
