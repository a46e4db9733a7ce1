// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"providerhub/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the Redis client backing the search result cache.
var CacheClient *redis.Client

// InitCache connects the search cache client (using REDIS_CACHE_DB). Unlike
// the store, the cache is optional: callers decide what to do on error.
func InitCache() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (cache) at %s: %w", config.AppConfig.RedisAddr, err)
	}
	CacheClient = client
	return client, nil
}
