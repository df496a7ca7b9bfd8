package llmgw

import "errors"

// ErrLLMUnavailable is returned when every retry attempt (primary and
// fallback model) exhausted without producing a response.
var ErrLLMUnavailable = errors.New("llmgw: model unavailable after retries")

// ErrLLMTimeout is returned when the total wall-clock budget for a
// Generate call is exhausted before retries could complete.
var ErrLLMTimeout = errors.New("llmgw: request budget exhausted")
