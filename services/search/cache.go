package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"providerhub/models"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "search:v1:"

// ResultCache stores rendered search responses.
type ResultCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (resp *models.SearchResponse, ok bool, err error)
	Set(ctx context.Context, key string, resp *models.SearchResponse) error
}

// RedisResultCache is a ResultCache backed by Redis string keys with a TTL.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, ttl: ttl}
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (*models.SearchResponse, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return &resp, true, nil
}

func (c *RedisResultCache) Set(ctx context.Context, key string, resp *models.SearchResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// CacheKey derives a canonical key from the compiled form of the filters, so
// requests that differ only in case, spacing or repeated words share an entry.
func CacheKey(filters SearchFilters) string {
	criteria := Compile(filters)
	v := url.Values{}
	if len(criteria.Terms) > 0 {
		v.Set("q", strings.Join(criteria.Terms, " "))
	}
	if criteria.Category != "" {
		v.Set("category", criteria.Category)
	}
	if criteria.Service != "" {
		v.Set("service", strings.ToLower(criteria.Service))
	}
	if criteria.MinRating != nil {
		v.Set("rating", strconv.FormatFloat(*criteria.MinRating, 'g', -1, 64))
	}
	if filters.Location != nil {
		v.Set("near", strconv.FormatFloat(filters.Location.Longitude, 'g', -1, 64)+","+
			strconv.FormatFloat(filters.Location.Latitude, 'g', -1, 64))
	}
	v.Set("page", strconv.Itoa(filters.Page))
	v.Set("limit", strconv.Itoa(filters.Limit))
	return cacheKeyPrefix + v.Encode()
}
