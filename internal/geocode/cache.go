// README: Redis-backed cache decorator for geocoding lookups.
package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"carpool/internal/observability"
	"carpool/internal/types"
)

const cacheKeyPrefix = "geocode:"

// cacheClient is the slice of the redis client the cache uses.
// *redis.Client satisfies it.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedGeocoder wraps another Geocoder with a Redis cache. Cache
// trouble is logged and degrades to the inner geocoder; failures are
// never cached.
type CachedGeocoder struct {
	inner  Geocoder
	redis  cacheClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedGeocoder(inner Geocoder, redisClient cacheClient, ttl time.Duration, logger *slog.Logger) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, redis: redisClient, ttl: ttl, logger: logger}
}

func (c *CachedGeocoder) Resolve(ctx context.Context, locationText string) (types.Point, error) {
	key := cacheKey(locationText)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		if p, ok := decodePoint(val); ok {
			observability.GeocodeCacheHits.Inc()
			return p, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("geocode cache read failed", "error", err)
	}

	p, err := c.inner.Resolve(ctx, locationText)
	if err != nil {
		return types.Point{}, err
	}

	if err := c.redis.Set(ctx, key, encodePoint(p), c.ttl).Err(); err != nil {
		c.logger.Warn("geocode cache write failed", "error", err)
	}
	return p, nil
}

// cacheKey normalizes the location text so "Downtown " and "downtown"
// share an entry.
func cacheKey(locationText string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(locationText))
}

func encodePoint(p types.Point) string {
	return fmt.Sprintf("%.7f,%.7f", p.Lat, p.Lng)
}

func decodePoint(val string) (types.Point, bool) {
	parts := strings.SplitN(val, ",", 2)
	if len(parts) != 2 {
		return types.Point{}, false
	}
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	lng, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}
