package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisOptions selects the redis server and the lifetime of cached lists.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisPopularCache keeps all ranked lists in one hash so a single DEL
// invalidates them together. A counter next to the hash counts invalidations.
type RedisPopularCache struct {
	client        *redis.Client
	key           string
	generationKey string
	ttl           time.Duration
}

func NewRedisPopularCache(opts RedisOptions, prefix string) (*RedisPopularCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisPopularCache(client, prefix, opts.TTL), nil
}

func newRedisPopularCache(client *redis.Client, prefix string, ttl time.Duration) *RedisPopularCache {
	return &RedisPopularCache{
		client:        client,
		key:           BuildKey(prefix),
		generationKey: BuildGenerationKey(prefix),
		ttl:           ttl,
	}
}

// BuildKey returns the hash key holding the popular lists.
func BuildKey(prefix string) string {
	return fmt.Sprintf("%s:films:popular", prefix)
}

// BuildGenerationKey returns the key of the invalidation counter.
func BuildGenerationKey(prefix string) string {
	return fmt.Sprintf("%s:films:popular:generation", prefix)
}

func (c *RedisPopularCache) Get(ctx context.Context, count int) ([]models.Film, error) {
	data, err := c.client.HGet(ctx, c.key, strconv.Itoa(count)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var films []models.Film
	if err := json.Unmarshal(data, &films); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return films, nil
}

func (c *RedisPopularCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.generation(ctx, c.client)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (c *RedisPopularCache) generation(ctx context.Context, cmd stringGetter) (int64, error) {
	gen, err := cmd.Get(ctx, c.generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores the list and refreshes the hash TTL. The write is skipped with
// ErrStaleGeneration when the generation moved past the given one.
func (c *RedisPopularCache) Set(ctx context.Context, generation int64, count int, films []models.Film) error {
	data, err := json.Marshal(films)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, c.key, strconv.Itoa(count), data)
			if c.ttl > 0 {
				pipe.Expire(ctx, c.key, c.ttl)
			}
			return nil
		})
		return err
	}, c.generationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return ErrStaleGeneration
	default:
		return fmt.Errorf("failed to set in redis: %w", err)
	}
}

func (c *RedisPopularCache) Invalidate(ctx context.Context) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, c.generationKey)
	pipe.Del(ctx, c.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *RedisPopularCache) Close() error {
	return c.client.Close()
}

var _ PopularCache = (*RedisPopularCache)(nil)
