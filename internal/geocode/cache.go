package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Geocoder is the provider contract the cache wraps and the rest of the
// system consumes.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.LocationCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error)
}

// CachedClient wraps a Geocoder with a Redis cache.
// Reverse lookups are cached by coordinates rounded to 4 decimal places
// (roughly 11 m), searches by the lowercased query. Cache failures are logged
// and treated as misses so Redis is never on the critical path.
type CachedClient struct {
	inner  Geocoder
	client *goredis.Client
	ttl    time.Duration
}

// NewCachedClient wraps inner with a Redis cache. A nil Redis client returns
// the inner Geocoder unchanged, so callers can wire the wrapper
// unconditionally and let configuration decide.
func NewCachedClient(inner Geocoder, client *goredis.Client, ttl time.Duration) Geocoder {
	if client == nil {
		return inner
	}
	return &CachedClient{inner: inner, client: client, ttl: ttl}
}

// Search returns cached results for a repeated query, or delegates and caches.
func (c *CachedClient) Search(ctx context.Context, query string) ([]domain.LocationCandidate, error) {
	key := "geocode:search:" + strings.ToLower(strings.TrimSpace(query))

	var cached []domain.LocationCandidate
	if ok := c.lookup(ctx, key, &cached); ok {
		return cached, nil
	}

	results, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, results)
	return results, nil
}

// Reverse returns a cached candidate for a nearby coordinate, or delegates
// and caches.
func (c *CachedClient) Reverse(ctx context.Context, lat, lon float64) (domain.LocationCandidate, error) {
	key := fmt.Sprintf("geocode:reverse:%.4f:%.4f", lat, lon)

	var cached domain.LocationCandidate
	if ok := c.lookup(ctx, key, &cached); ok {
		return cached, nil
	}

	result, err := c.inner.Reverse(ctx, lat, lon)
	if err != nil {
		return domain.LocationCandidate{}, err
	}
	c.store(ctx, key, result)
	return result, nil
}

// lookup loads and decodes a cache entry, reporting whether it was a hit.
func (c *CachedClient) lookup(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.WarnContext(ctx, "geocode cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.WarnContext(ctx, "geocode cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// store encodes and writes a cache entry, logging failures.
func (c *CachedClient) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "geocode cache write failed", "key", key, "error", err)
	}
}
