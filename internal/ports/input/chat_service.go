package input

import (
	"context"

	"github.com/sfy45/Gen-UI/internal/domain"
)

// ChatService interface - Input port (use case)
// Defines what the gateway can do with inbound messages and direct lookups
type ChatService interface {
	// Chat classifies the message and dispatches it to the matching handler
	Chat(ctx context.Context, request domain.ChatRequest) (*domain.ResponseEnvelope, error)

	// Weather looks up the current weather for a city, bypassing classification
	Weather(ctx context.Context, city string) (*domain.ResponseEnvelope, error)

	// News looks up the latest headlines, bypassing classification
	News(ctx context.Context, query domain.NewsQuery) (*domain.ResponseEnvelope, error)

	// EndSession drops a conversation session and its history
	EndSession(sessionID string) error

	// Health reports which providers are configured
	Health() domain.ServiceHealth
}
