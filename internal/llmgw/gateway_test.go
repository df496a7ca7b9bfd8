package llmgw

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableContextErrors(t *testing.T) {
	assert.False(t, isRetryable(context.Background(), context.Canceled))
	assert.False(t, isRetryable(context.Background(), context.DeadlineExceeded))
}

func TestIsRetryableUnknownNetworkError(t *testing.T) {
	assert.True(t, isRetryable(context.Background(), errors.New("dial tcp: connection refused")))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
