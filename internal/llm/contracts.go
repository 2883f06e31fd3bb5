package llm

import "context"

// CompletionRequest is a single prompt/response exchange with the
// structuring model. The transport is opaque to the pipeline; prompt
// construction and response parsing are not.
type CompletionRequest struct {
	System              string
	User                string
	Temperature         float32
	MaxCompletionTokens int
}

// Completer is the interface the pipeline depends on. Implementations are
// text-in/text-out; callers own all JSON handling of the response.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
