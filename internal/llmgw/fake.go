package llmgw

import (
	"context"
	"time"
)

// Fake is an in-memory Gateway double for pipeline tests. Scripted
// responses are consumed in order; once exhausted, the last one is
// repeated. A non-nil Err is returned for every call, and an empty
// Responses list yields ErrLLMUnavailable.
type Fake struct {
	Responses []string
	Err       error
	Calls     []FakeCall
}

// FakeCall records one Generate invocation for test assertions.
type FakeCall struct {
	SystemPrompt   string
	UserPrompt     string
	CacheKeyPrefix string
}

func (f *Fake) Generate(_ context.Context, systemPrompt, userPrompt, cacheKeyPrefix string, _ bool) (Result, error) {
	f.Calls = append(f.Calls, FakeCall{systemPrompt, userPrompt, cacheKeyPrefix})

	if f.Err != nil {
		return Result{}, f.Err
	}

	if len(f.Responses) == 0 {
		return Result{}, ErrLLMUnavailable
	}

	idx := len(f.Calls) - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}

	return Result{Content: f.Responses[idx], Model: "fake-model", Ts: time.Now()}, nil
}

var _ Gateway = (*Fake)(nil)
