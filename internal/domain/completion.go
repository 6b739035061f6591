package domain

import "context"

// Chat roles understood by completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn of a completion conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// Completer is the shared chat completion contract between layers.
// Implementations return the assistant message verbatim, no post-processing.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (CompletionResult, error)
}

// CompletionResult carries the assistant reply and token usage.
type CompletionResult struct {
	Message          ChatMessage
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
