package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

// SuggestionCacheTTL bounds staleness between a refresh and a read.
const SuggestionCacheTTL = 15 * time.Minute

const quotaKey = "youtube:quota_exhausted"

// CacheService is a Redis cache-aside layer for suggestion lists plus the
// provider quota-exhausted marker.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, every operation becomes a no-op: the engine runs fine
// without Redis, it just re-reads Postgres and re-checks quota the hard way.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetSuggestions returns the cached list for a user, or nil on miss.
func (c *CacheService) GetSuggestions(ctx context.Context, userID string) ([]model.Suggestion, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, suggestionKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var suggestions []model.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// SetSuggestions caches a user's suggestion list.
func (c *CacheService) SetSuggestions(ctx context.Context, userID string, suggestions []model.Suggestion) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(suggestions)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, suggestionKey(userID), b, SuggestionCacheTTL).Err()
}

// InvalidateSuggestions removes a user's cached list (called after a refresh
// writes new rows).
func (c *CacheService) InvalidateSuggestions(ctx context.Context, userID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, suggestionKey(userID)).Err()
}

// MarkQuotaExhausted records that the provider's daily quota ran out. The
// marker expires at the next UTC midnight, the provider's reset boundary.
func (c *CacheService) MarkQuotaExhausted(ctx context.Context, now time.Time) error {
	if c.rdb == nil {
		return nil
	}
	ttl := time.Until(NextQuotaReset(now))
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, quotaKey, "1", ttl).Err()
}

// QuotaExhausted reports whether the quota marker is set and how long until
// it clears. Redis errors read as "not exhausted"; an optimistic run that
// hits the real quota wall just re-sets the marker.
func (c *CacheService) QuotaExhausted(ctx context.Context) (bool, time.Duration) {
	if c.rdb == nil {
		return false, 0
	}
	ttl, err := c.rdb.TTL(ctx, quotaKey).Result()
	if err != nil {
		log.Printf("cache: quota marker read error: %v", err)
		return false, 0
	}
	if ttl <= 0 {
		return false, 0
	}
	return true, ttl
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// NextQuotaReset returns the next UTC midnight after now.
func NextQuotaReset(now time.Time) time.Time {
	utc := now.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day()+1, 0, 0, 0, 0, time.UTC)
}

func suggestionKey(userID string) string {
	return fmt.Sprintf("suggestions:%s", userID)
}
