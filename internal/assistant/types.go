package assistant

import (
	"context"

	"github.com/hbalint/jarvis/internal/history"
	"github.com/hbalint/jarvis/internal/llm"
)

// StreamSink receives generated text chunk by chunk. It is a side
// channel only: control-flow decisions always act on the fully
// assembled response text.
type StreamSink = func(chunk string)

// ModelClient is the generation backend boundary: transcript in, text
// out, optionally incremental. The orchestrator depends on nothing
// backend-specific beyond this.
type ModelClient interface {
	Complete(ctx context.Context, messages []llm.Message, sink StreamSink) (string, error)
}

// Searcher is the external search provider boundary. Failure is a
// value; retries happen inside the implementation.
type Searcher interface {
	Search(ctx context.Context, query string) (results string, ok bool)
	Available() bool
}

// turnState is the orchestration-local state of one turn. It is created
// at the start of HandleTurn and discarded at the end; only the user
// input and the final answer are merged into the persisted transcript.
type turnState struct {
	transcript     history.Transcript // working copy, with scaffolding
	searchAttempts int
	toolAttempts   int
	done           bool
	result         string
}

// Status reports which subsystems are live
type Status struct {
	Model     bool `json:"model"`
	Search    bool `json:"web_search"`
	Tools     bool `json:"system_tools"`
	Streaming bool `json:"streaming"`
}
