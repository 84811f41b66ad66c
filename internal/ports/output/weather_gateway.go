package output

import (
	"context"

	"github.com/sfy45/Gen-UI/internal/domain"
)

// WeatherGateway interface - Output port
// Defines what the application needs from a current-weather provider
type WeatherGateway interface {
	// CurrentWeather returns the normalized weather for a city.
	// Fails with domain.ErrNotFound for an unknown city, domain.ErrServiceUnavailable
	// when no credential is configured and domain.ErrUpstream on transport or 5xx failures.
	CurrentWeather(ctx context.Context, city string) (*domain.WeatherResult, error)

	// Configured reports whether the provider credential is present
	Configured() bool
}
