package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mroshb/filmorate/internal/models"
)

func TestNopCache(t *testing.T) {
	var c PopularCache = NopCache{}
	ctx := context.Background()

	if err := c.Set(ctx, 0, 10, nil); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx, 10); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Errorf("Invalidate() error = %v", err)
	}
}

func TestBuildKey(t *testing.T) {
	if got, want := BuildKey("filmorate"), "filmorate:films:popular"; got != want {
		t.Errorf("BuildKey() = %q, want %q", got, want)
	}
	if got, want := BuildGenerationKey("filmorate"), "filmorate:films:popular:generation"; got != want {
		t.Errorf("BuildGenerationKey() = %q, want %q", got, want)
	}
}

func TestNewRedisPopularCache_Unreachable(t *testing.T) {
	_, err := NewRedisPopularCache(RedisOptions{Address: "127.0.0.1:1", TTL: time.Minute}, "filmorate")
	if err == nil {
		t.Fatal("NewRedisPopularCache() error = nil, want connection error")
	}
}

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisPopularCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisPopularCache(RedisOptions{Address: mr.Addr(), TTL: ttl}, "filmorate")
	if err != nil {
		t.Fatalf("NewRedisPopularCache() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisPopularCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, time.Minute)

	if _, err := c.Get(ctx, 2); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get() error = %v, want ErrCacheMiss", err)
	}

	films := []models.Film{
		{ID: 2, Name: "Heat", Duration: 170, Mpa: &models.Mpa{ID: 4, Name: "R"}},
		{ID: 1, Name: "Alien", Duration: 117, Genres: []models.Genre{{ID: 4, Name: "Thriller"}}},
	}
	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation() error = %v", err)
	}
	if err := c.Set(ctx, gen, 2, films); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, films) {
		t.Errorf("Get() = %+v, want %+v", got, films)
	}
	if _, err := c.Get(ctx, 3); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(3) error = %v, want ErrCacheMiss", err)
	}

	if ttl := mr.TTL(BuildKey("filmorate")); ttl != time.Minute {
		t.Errorf("TTL = %v, want %v", ttl, time.Minute)
	}
	mr.FastForward(time.Minute + time.Second)
	if _, err := c.Get(ctx, 2); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after TTL error = %v, want ErrCacheMiss", err)
	}
}

func TestRedisPopularCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedisCache(t, time.Minute)
	films := []models.Film{{ID: 1, Name: "Alien"}}

	before, _ := c.Generation(ctx)
	if err := c.Set(ctx, before, 1, films); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	if _, err := c.Get(ctx, 1); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after Invalidate error = %v, want ErrCacheMiss", err)
	}
	after, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation() error = %v", err)
	}
	if after != before+1 {
		t.Errorf("Generation() = %d, want %d", after, before+1)
	}

	if err := c.Set(ctx, before, 1, films); !errors.Is(err, ErrStaleGeneration) {
		t.Errorf("Set(old generation) error = %v, want ErrStaleGeneration", err)
	}
	if _, err := c.Get(ctx, 1); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after stale Set error = %v, want ErrCacheMiss", err)
	}
	if err := c.Set(ctx, after, 1, films); err != nil {
		t.Errorf("Set(current generation) error = %v", err)
	}
}

func TestRedisPopularCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, 0)

	if err := c.Set(ctx, 0, 1, []models.Film{{ID: 1}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL(BuildKey("filmorate")); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}
