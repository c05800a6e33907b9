package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by an LLM request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ExecutionMeta holds operational metadata for one composer, aggregator or
// translator run.
type ExecutionMeta struct {
	Operation string
	Usage     TokenUsage
	Latency   time.Duration
}
