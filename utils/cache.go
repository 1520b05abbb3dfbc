package utils

import (
	"context"
	"fmt"
	"time"

	"carelink/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs the search result cache.
	CacheClient *redis.Client
	// SessionClient backs the persisted session snapshot.
	SessionClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitCache connects the search cache and session clients. It is a no-op
// when no Redis address is configured.
func InitCache() error {
	if !config.RedisConfigured() {
		return nil
	}
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if SessionClient, err = newRedisClient(config.AppConfig.RedisSessionDB); err != nil {
		CacheClient.Close()
		CacheClient = nil
		return err
	}
	return nil
}

// RedisClients returns the connected clients, for health checks and shutdown.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{CacheClient, SessionClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// CloseCache closes every connected client.
func CloseCache() {
	for _, c := range RedisClients() {
		_ = c.Close()
	}
}
