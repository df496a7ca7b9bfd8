package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedDimension(t *testing.T) {
	v := embed("TCO fleet service schedule")
	assert.Len(t, v, VectorDim)
}

func TestEmbedDeterministic(t *testing.T) {
	a := embed("safety rating autopilot")
	b := embed("safety rating autopilot")
	assert.Equal(t, a, b)
}

func TestCosineSimilarityIdentical(t *testing.T) {
	v := embed("total cost of ownership")
	assert.InDelta(t, 1.0, cosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilarityDistinctText(t *testing.T) {
	a := embed("total cost of ownership fleet pricing")
	b := embed("child safety autopilot rating")
	assert.Less(t, cosineSimilarity(a, b), 0.9)
}
