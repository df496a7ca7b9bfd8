package model

import "time"

// KnowledgeType classifies a KnowledgeNugget's tactical purpose.
type KnowledgeType string

const (
	KnowledgeGeneral     KnowledgeType = "general"
	KnowledgeObjection   KnowledgeType = "objection"
	KnowledgeClosing     KnowledgeType = "closing"
	KnowledgeProduct     KnowledgeType = "product"
	KnowledgePricing     KnowledgeType = "pricing"
	KnowledgeCompetition KnowledgeType = "competition"
	KnowledgeDemo        KnowledgeType = "demo"
	KnowledgeFollowUp    KnowledgeType = "follow_up"
	KnowledgeTechnical   KnowledgeType = "technical"
)

// KnowledgeNugget is a vector-indexed piece of domain advice.
type KnowledgeNugget struct {
	ID             string        `json:"id"`
	Content        string        `json:"content"`
	Title          string        `json:"title"`
	Type           KnowledgeType `json:"knowledge_type"`
	Archetype      string        `json:"archetype,omitempty"`
	Tags           []string      `json:"tags"`
	Source         string        `json:"source"`
	CreatedAt      time.Time     `json:"created_at"`
	ContentLength  int           `json:"content_length"`
	EmbeddingModel string        `json:"embedding_model"`
	EmbeddingVector []float32    `json:"-"`
}

// ScoredNugget pairs a retrieved nugget with its similarity to the query.
type ScoredNugget struct {
	Nugget          KnowledgeNugget `json:"nugget"`
	SimilarityScore float64         `json:"similarity_score"`
}
