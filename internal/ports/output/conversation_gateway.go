package output

import (
	"context"

	"github.com/sfy45/Gen-UI/internal/domain"
)

// ConversationGateway interface - Output port
// Defines what the application needs from a language model provider
type ConversationGateway interface {
	// Reply generates the next assistant message for the given text, using
	// the ordered prior history of the session as context.
	// Fails with domain.ErrServiceUnavailable when no credential is configured.
	Reply(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ConversationReply, error)

	// Configured reports whether the provider credential is present
	Configured() bool
}
