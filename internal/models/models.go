package models

import (
	"context"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Completer is a model backend. The agent loop talks to every backend
// through this interface only.
type Completer interface {
	// Setup the completer, typically by reading credentials from the
	// environment. No request may be sent before Setup has succeeded.
	Setup() error

	// Complete sends the chat together with the tool specifications and
	// returns the normalized reply of the model.
	Complete(ctx context.Context, chat pub_models.Chat, specs []pub_models.Specification) (Completion, error)

	// ToolResultMessages shapes tool results into the turns which the
	// backend expects to follow an assistant turn with tool calls.
	ToolResultMessages(results []ToolResult) []pub_models.Message
}

// Completion is one normalized model reply.
type Completion struct {
	// Text is the textual part of the reply, may be empty.
	Text string
	// ToolCalls requested by the model, in emitted order.
	ToolCalls []pub_models.Call
	// Message is the assistant turn to append to the chat, in the shape the
	// backend wants to see it again.
	Message pub_models.Message
}

// ToolResult is the outcome of one tool call.
type ToolResult struct {
	Call    pub_models.Call
	Content string
	// IsError is set when the tool rejected the input or failed to run.
	IsError bool
}
