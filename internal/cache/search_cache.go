package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"sentinel-ds/internal/model"
)

const searchVersionKey = "search:version"

// SearchCache stores search results under a generation number. Invalidate
// bumps the generation, so every earlier entry becomes unreachable and
// expires on its own TTL.
type SearchCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewSearchCache(client *redisv9.Client, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SearchCache{client: client, ttl: ttl}
}

// SearchKey identifies one search request.
type SearchKey struct {
	Keyword    string
	Categories []string
	Limit      int
	Offset     int
}

// Version returns the current generation. A lookup reads it once and hands
// it to both Get and Set, so results computed before an Invalidate are
// stored under the old generation and never served afterwards.
func (c *SearchCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, searchVersionKey).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get search version failed: %w", err)
	}
	return v, nil
}

func (c *SearchCache) Get(ctx context.Context, version int64, key SearchKey) ([]model.SearchHit, bool, error) {
	raw, err := c.client.Get(ctx, c.entryKey(version, key)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get search result failed: %w", err)
	}

	var hits []model.SearchHit
	if err := json.Unmarshal([]byte(raw), &hits); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached search result failed: %w", err)
	}
	return hits, true, nil
}

func (c *SearchCache) Set(ctx context.Context, version int64, key SearchKey, hits []model.SearchHit) error {
	payload, err := json.Marshal(hits)
	if err != nil {
		return fmt.Errorf("marshal search cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.entryKey(version, key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set search result failed: %w", err)
	}
	return nil
}

// Invalidate drops every cached result. It is called after any document
// write.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, searchVersionKey).Err(); err != nil {
		return fmt.Errorf("redis bump search version failed: %w", err)
	}
	return nil
}

func (c *SearchCache) entryKey(version int64, key SearchKey) string {
	categories := append([]string(nil), key.Categories...)
	sort.Strings(categories)
	return fmt.Sprintf("search:v%d:%s:%s:%d:%d",
		version, key.Keyword, strings.Join(categories, ","), key.Limit, key.Offset)
}
