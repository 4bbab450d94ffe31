package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
)

const (
	keyPrefix     = "reports"
	generationKey = keyPrefix + ":generation"
)

// RedisCache versiona as chaves por geração: invalidar é só incrementar o contador,
// e as entradas antigas expiram pelo TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(ctx context.Context, cfg config.Redis, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	}).Info("cache: connected to redis")

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (Entry, error) {
	generation, err := c.generation(ctx)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Generation: generation}
	value, err := c.client.Get(ctx, entryKey(generation, key)).Bytes()
	if err == redis.Nil {
		return entry, nil
	}
	if err != nil {
		return Entry{}, fmt.Errorf("redis get: %w", err)
	}

	entry.Value = value
	entry.Found = true
	return entry, nil
}

// Set grava sob a geração lida no Get; se houve invalidação no meio, a chave
// pertence a uma geração que ninguém mais lê e expira pelo TTL
func (c *RedisCache) Set(ctx context.Context, key string, generation int64, value []byte) error {
	if err := c.client.Set(ctx, entryKey(generation, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	generation, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}

	logrus.WithField("generation", generation).Info("cache: report cache invalidated")
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return generation, nil
}

func entryKey(generation int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, generation, key)
}
