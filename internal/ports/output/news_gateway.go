package output

import (
	"context"

	"github.com/sfy45/Gen-UI/internal/domain"
)

// NewsGateway interface - Output port
// Defines what the application needs from a headlines provider
type NewsGateway interface {
	// TopHeadlines returns at most domain.MaxNewsArticles articles in source order.
	// The result may be empty. Fails with domain.ErrServiceUnavailable or domain.ErrUpstream.
	TopHeadlines(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error)

	// Configured reports whether the provider credential is present
	Configured() bool
}
