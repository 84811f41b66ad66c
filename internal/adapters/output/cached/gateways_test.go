package cached

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sfy45/Gen-UI/internal/domain"
)

// memoryCache implements output.ResultCache for testing
type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	lastTTL time.Duration
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("connection refused")
	}
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	c.lastTTL = ttl
	return nil
}

type countingWeather struct {
	calls      int
	configured bool
	err        error
}

func (w *countingWeather) CurrentWeather(ctx context.Context, city string) (*domain.WeatherResult, error) {
	w.calls++
	if !w.configured {
		return nil, fmt.Errorf("%w: weather api key missing", domain.ErrServiceUnavailable)
	}
	if w.err != nil {
		return nil, w.err
	}
	return &domain.WeatherResult{City: "Paris", Temperature: 18, Humidity: 60}, nil
}

func (w *countingWeather) Configured() bool { return w.configured }

type countingNews struct {
	calls int
}

func (n *countingNews) TopHeadlines(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error) {
	n.calls++
	return []domain.NewsArticle{{Title: "Headline", Source: "Wire"}}, nil
}

func (n *countingNews) Configured() bool { return true }

// TestWeatherGatewayCachesResults tests read-through behavior
func TestWeatherGatewayCachesResults(t *testing.T) {
	inner := &countingWeather{configured: true}
	cache := newMemoryCache()
	gateway := NewWeatherGateway(inner, cache, 10*time.Minute)

	for _, city := range []string{"Paris", " paris "} {
		result, err := gateway.CurrentWeather(context.Background(), city)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.City != "Paris" || result.Temperature != 18 {
			t.Errorf("unexpected result: %+v", result)
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.calls)
	}
	if cache.lastTTL != 10*time.Minute {
		t.Errorf("expected ttl 10m, got %v", cache.lastTTL)
	}
}

// TestWeatherGatewayDoesNotCacheErrors tests that failures reach the caller every time
func TestWeatherGatewayDoesNotCacheErrors(t *testing.T) {
	inner := &countingWeather{configured: true, err: fmt.Errorf("%w: city not found", domain.ErrNotFound)}
	gateway := NewWeatherGateway(inner, newMemoryCache(), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := gateway.CurrentWeather(context.Background(), "atlantis"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", inner.calls)
	}
}

// TestWeatherGatewayUnconfiguredBypassesCache tests that a cache never masks a missing credential
func TestWeatherGatewayUnconfiguredBypassesCache(t *testing.T) {
	cache := newMemoryCache()
	cache.items["weather:paris"] = []byte(`{"city":"Paris"}`)
	gateway := NewWeatherGateway(&countingWeather{}, cache, time.Minute)

	if gateway.Configured() {
		t.Error("expected unconfigured gateway")
	}
	if _, err := gateway.CurrentWeather(context.Background(), "paris"); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

// TestWeatherGatewayCacheFailureFallsThrough tests that cache errors are not surfaced
func TestWeatherGatewayCacheFailureFallsThrough(t *testing.T) {
	inner := &countingWeather{configured: true}
	cache := newMemoryCache()
	cache.failGet = true
	gateway := NewWeatherGateway(inner, cache, time.Minute)

	if _, err := gateway.CurrentWeather(context.Background(), "paris"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.calls)
	}
}

// TestNewsGatewayKeysByParameters tests that distinct queries do not share entries
func TestNewsGatewayKeysByParameters(t *testing.T) {
	inner := &countingNews{}
	gateway := NewNewsGateway(inner, newMemoryCache(), time.Minute)
	sports := "sports"
	tech := "technology"

	queries := []domain.NewsQuery{
		{Category: &sports, Country: "us"},
		{Category: &sports, Country: "us"},
		{Category: &tech, Country: "us"},
		{Category: &sports, Country: "gb"},
	}
	for _, q := range queries {
		articles, err := gateway.TopHeadlines(context.Background(), q)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(articles) != 1 || articles[0].Title != "Headline" {
			t.Errorf("unexpected articles: %+v", articles)
		}
	}

	if inner.calls != 3 {
		t.Errorf("expected 3 upstream calls, got %d", inner.calls)
	}
}
