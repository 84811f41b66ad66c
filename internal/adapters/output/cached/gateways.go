package cached

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time checks
var (
	_ output.WeatherGateway = (*WeatherGateway)(nil)
	_ output.NewsGateway    = (*NewsGateway)(nil)
)

// WeatherGateway struct - Read-through cache in front of a weather gateway
type WeatherGateway struct {
	next  output.WeatherGateway
	cache output.ResultCache
	ttl   time.Duration
}

// NewWeatherGateway func - Wraps next with a cache; results expire after ttl
func NewWeatherGateway(next output.WeatherGateway, cache output.ResultCache, ttl time.Duration) *WeatherGateway {
	return &WeatherGateway{next: next, cache: cache, ttl: ttl}
}

// Configured delegates to the wrapped gateway
func (g *WeatherGateway) Configured() bool {
	return g.next.Configured()
}

// CurrentWeather serves from cache when possible. Errors are never cached.
func (g *WeatherGateway) CurrentWeather(ctx context.Context, city string) (*domain.WeatherResult, error) {
	if !g.next.Configured() {
		return g.next.CurrentWeather(ctx, city)
	}

	key := "weather:" + strings.ToLower(strings.TrimSpace(city))
	var result domain.WeatherResult
	if load(ctx, g.cache, key, &result) {
		return &result, nil
	}

	fresh, err := g.next.CurrentWeather(ctx, city)
	if err != nil {
		return nil, err
	}
	store(ctx, g.cache, key, fresh, g.ttl)
	return fresh, nil
}

// NewsGateway struct - Read-through cache in front of a news gateway
type NewsGateway struct {
	next  output.NewsGateway
	cache output.ResultCache
	ttl   time.Duration
}

// NewNewsGateway func - Wraps next with a cache; results expire after ttl
func NewNewsGateway(next output.NewsGateway, cache output.ResultCache, ttl time.Duration) *NewsGateway {
	return &NewsGateway{next: next, cache: cache, ttl: ttl}
}

// Configured delegates to the wrapped gateway
func (g *NewsGateway) Configured() bool {
	return g.next.Configured()
}

// TopHeadlines serves from cache when possible. Errors are never cached.
func (g *NewsGateway) TopHeadlines(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error) {
	if !g.next.Configured() {
		return g.next.TopHeadlines(ctx, query)
	}

	key := newsKey(query)
	var articles []domain.NewsArticle
	if load(ctx, g.cache, key, &articles) {
		return articles, nil
	}

	fresh, err := g.next.TopHeadlines(ctx, query)
	if err != nil {
		return nil, err
	}
	store(ctx, g.cache, key, fresh, g.ttl)
	return fresh, nil
}

func newsKey(query domain.NewsQuery) string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return strings.ToLower(*s)
	}
	return "news:" + deref(query.Query) + "|" + deref(query.Category) + "|" + strings.ToLower(query.Country)
}

// load reports a hit only when the value was found and decoded; failures are logged and treated as misses
func load(ctx context.Context, cache output.ResultCache, key string, dst interface{}) bool {
	raw, ok, err := cache.Get(ctx, key)
	if err != nil {
		logrus.Warnf("Result cache read failed for %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logrus.Warnf("Discarding undecodable cache entry %s: %v", key, err)
		return false
	}
	logrus.Debugf("Result cache hit: %s", key)
	return true
}

func store(ctx context.Context, cache output.ResultCache, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logrus.Warnf("Result cache encode failed for %s: %v", key, err)
		return
	}
	if err := cache.Set(ctx, key, raw, ttl); err != nil {
		logrus.Warnf("Result cache write failed for %s: %v", key, err)
	}
}
