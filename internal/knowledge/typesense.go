package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"copilot.dev/backend/internal/model"
	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"
)

// document is the Typesense-native shape of a KnowledgeNugget, mirroring
// spec.md §6's persisted-state list for knowledge nuggets.
type document struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Title          string    `json:"title"`
	KnowledgeType  string    `json:"knowledge_type"`
	Archetype      string    `json:"archetype"`
	Tags           []string  `json:"tags"`
	Source         string    `json:"source"`
	CreatedAt      int64     `json:"created_at"`
	ContentLength  int       `json:"content_length"`
	EmbeddingModel string    `json:"embedding_model"`
	Embedding      []float32 `json:"embedding"`
}

func toDocument(n model.KnowledgeNugget) document {
	vec := n.EmbeddingVector
	if vec == nil {
		vec = embed(n.Content)
	}
	return document{
		ID:             n.ID,
		Content:        n.Content,
		Title:          n.Title,
		KnowledgeType:  string(n.Type),
		Archetype:      n.Archetype,
		Tags:           n.Tags,
		Source:         n.Source,
		CreatedAt:      n.CreatedAt.Unix(),
		ContentLength:  len(n.Content),
		EmbeddingModel: n.EmbeddingModel,
		Embedding:      vec,
	}
}

func (d document) toNugget() model.KnowledgeNugget {
	return model.KnowledgeNugget{
		ID:              d.ID,
		Content:         d.Content,
		Title:           d.Title,
		Type:            model.KnowledgeType(d.KnowledgeType),
		Archetype:       d.Archetype,
		Tags:            d.Tags,
		Source:          d.Source,
		CreatedAt:       time.Unix(d.CreatedAt, 0).UTC(),
		ContentLength:   d.ContentLength,
		EmbeddingModel:  d.EmbeddingModel,
		EmbeddingVector: d.Embedding,
	}
}

// Config configures the Typesense-backed store.
type Config struct {
	Host           string
	Port           string
	Protocol       string
	APIKey         string
	CollectionName string
	EmbeddingModel string
	VectorDim      int
}

// TypesenseStore is the Typesense-backed Knowledge Retriever (C2).
// It substitutes for the original system's Qdrant collection one for
// one: same 384-dim cosine vector, same payload shape.
type TypesenseStore struct {
	client         *typesense.Client
	collection     string
	embeddingModel string
	dim            int
}

// NewTypesenseStore constructs the store and ensures the backing
// collection exists with the expected schema.
func NewTypesenseStore(ctx context.Context, cfg Config) (*TypesenseStore, error) {
	dim := cfg.VectorDim
	if dim <= 0 {
		dim = VectorDim
	}
	if dim != VectorDim {
		return nil, fmt.Errorf("knowledge: configured vector dim %d does not match %d", dim, VectorDim)
	}

	serverURL := fmt.Sprintf("%s://%s:%s", cfg.Protocol, cfg.Host, cfg.Port)
	client := typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(cfg.APIKey),
	)

	store := &TypesenseStore{
		client:         client,
		collection:     cfg.CollectionName,
		embeddingModel: cfg.EmbeddingModel,
		dim:            dim,
	}

	if err := store.ensureCollection(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *TypesenseStore) ensureCollection(ctx context.Context) error {
	_, err := s.client.Collection(s.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: s.collection,
		Fields: []api.Field{
			{Name: "content", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "knowledge_type", Type: "string", Facet: pointer.True()},
			{Name: "archetype", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "tags", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "source", Type: "string", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
			{Name: "content_length", Type: "int32"},
			{Name: "embedding_model", Type: "string"},
			{Name: "embedding", Type: "float[]", NumDim: pointer.Int(s.dim)},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = s.client.Collections().Create(ctx, schema)
	return err
}

// Search implements spec.md §4.C2's nearest-neighbour lookup.
func (s *TypesenseStore) Search(ctx context.Context, queryText, archetype, knowledgeType string, limit int) ([]model.ScoredNugget, error) {
	if limit <= 0 {
		limit = 3
	}

	vec := embed(queryText)
	vecStrs := make([]string, len(vec))
	for i, v := range vec {
		vecStrs[i] = fmt.Sprintf("%f", v)
	}
	vectorQuery := fmt.Sprintf("embedding:([%s], k:%d)", strings.Join(vecStrs, ","), limit)

	var filters []string
	if archetype != "" {
		filters = append(filters, fmt.Sprintf("archetype:=%s", archetype))
	}
	if knowledgeType != "" {
		filters = append(filters, fmt.Sprintf("knowledge_type:=%s", knowledgeType))
	}

	params := &api.SearchCollectionParams{
		Q:           pointer.String("*"),
		QueryBy:     pointer.String("content"),
		VectorQuery: pointer.String(vectorQuery),
		PerPage:     pointer.Int(limit),
	}
	if len(filters) > 0 {
		params.FilterBy = pointer.String(strings.Join(filters, " && "))
	}

	result, err := s.client.Collection(s.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("knowledge: search: %w", err)
	}

	var out []model.ScoredNugget
	if result.Hits == nil {
		return out, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc, err := decodeDocument(*hit.Document)
		if err != nil {
			continue
		}
		similarity := 1.0
		if hit.VectorDistance != nil {
			similarity = 1.0 - float64(*hit.VectorDistance)
		}
		out = append(out, model.ScoredNugget{Nugget: doc.toNugget(), SimilarityScore: similarity})
	}

	return out, nil
}

// BulkUpsert implements spec.md §4.C2: computes an embedding per nugget,
// generates UUID ids when absent, single batched write.
func (s *TypesenseStore) BulkUpsert(ctx context.Context, nuggets []model.KnowledgeNugget) ([]string, error) {
	if s.dim != VectorDim {
		return nil, ErrDimensionMismatch
	}

	nuggets = assignIDs(nuggets)
	docs := make([]any, len(nuggets))
	ids := make([]string, len(nuggets))

	for i, n := range nuggets {
		n.EmbeddingModel = s.embeddingModel
		docs[i] = toDocument(n)
		ids[i] = n.ID
	}

	action := "upsert"
	_, err := s.client.Collection(s.collection).Documents().Import(ctx, docs, &api.ImportDocumentsParams{Action: &action})
	if err != nil {
		return nil, fmt.Errorf("knowledge: bulk upsert: %w", err)
	}

	return ids, nil
}

func (s *TypesenseStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Collection(s.collection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("knowledge: delete %s: %w", id, err)
	}
	return nil
}

func (s *TypesenseStore) GetAll(ctx context.Context, limit int) ([]model.KnowledgeNugget, error) {
	if limit <= 0 {
		limit = 50
	}

	params := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		QueryBy: pointer.String("content"),
		PerPage: pointer.Int(limit),
		SortBy:  pointer.String("created_at:desc"),
	}

	result, err := s.client.Collection(s.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("knowledge: get all: %w", err)
	}

	var out []model.KnowledgeNugget
	if result.Hits == nil {
		return out, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc, err := decodeDocument(*hit.Document)
		if err != nil {
			continue
		}
		out = append(out, doc.toNugget())
	}
	return out, nil
}

// Health reports the collection's reachability and size, backing the
// frozen /knowledge/health/qdrant route name.
type Health struct {
	Status           string `json:"status"`
	CollectionExists bool   `json:"collection_exists"`
	DocumentCount    int64  `json:"document_count"`
}

func (s *TypesenseStore) Health(ctx context.Context) (Health, error) {
	coll, err := s.client.Collection(s.collection).Retrieve(ctx)
	if err != nil {
		return Health{Status: "unreachable", CollectionExists: false}, nil
	}
	count := int64(0)
	if coll.NumDocuments != nil {
		count = int64(*coll.NumDocuments)
	}
	return Health{Status: "ok", CollectionExists: true, DocumentCount: count}, nil
}

func decodeDocument(raw map[string]any) (document, error) {
	var d document
	if v, ok := raw["id"].(string); ok {
		d.ID = v
	}
	if v, ok := raw["content"].(string); ok {
		d.Content = v
	}
	if v, ok := raw["title"].(string); ok {
		d.Title = v
	}
	if v, ok := raw["knowledge_type"].(string); ok {
		d.KnowledgeType = v
	}
	if v, ok := raw["archetype"].(string); ok {
		d.Archetype = v
	}
	if v, ok := raw["source"].(string); ok {
		d.Source = v
	}
	if v, ok := raw["embedding_model"].(string); ok {
		d.EmbeddingModel = v
	}
	if v, ok := raw["created_at"].(float64); ok {
		d.CreatedAt = int64(v)
	}
	if v, ok := raw["content_length"].(float64); ok {
		d.ContentLength = int(v)
	}
	if tags, ok := raw["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				d.Tags = append(d.Tags, s)
			}
		}
	}
	return d, nil
}
