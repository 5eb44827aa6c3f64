package tools

import "context"

// Result represents the result of a tool execution. Failures are
// values, not errors: a failed tool feeds its explanation back into the
// conversation instead of aborting the turn.
type Result struct {
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// Failure builds an error result carrying a descriptive reason
func Failure(reason string) Result {
	return Result{Content: reason, IsError: true}
}

// Tool defines the interface for tools the assistant can call
type Tool interface {
	// Name returns the canonical name of the tool
	Name() string

	// Aliases returns alternative names that resolve to this tool
	Aliases() []string

	// Description returns a description of what the tool does
	Description() string

	// Execute runs the tool with the given argument string
	Execute(ctx context.Context, args string) Result
}
