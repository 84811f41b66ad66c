package domain

// ChatMessageRole represents the author of a message in a conversation
type ChatMessageRole string

const (
	// ChatMessageRoleSystem - System instructions
	ChatMessageRoleSystem ChatMessageRole = "system"
	// ChatMessageRoleUser - Human turn
	ChatMessageRoleUser ChatMessageRole = "user"
	// ChatMessageRoleAssistant - Model turn
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
)

// ChatMessage represents a single message in a conversation history
type ChatMessage struct {
	Role    ChatMessageRole
	Content string
}

// ChatRequest struct - Domain request for the chat use case
type ChatRequest struct {
	Message   string
	SessionID *string
}

// ConversationReply is the outcome of a conversation gateway call
type ConversationReply struct {
	Content string
	Model   string
}
