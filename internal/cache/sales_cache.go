package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/config"
	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by the summary API.
const KeyPrefix = "sales:"

// Payload kinds, also used as metric labels.
const (
	KindStoreSummary    = "store_summary"
	KindShopTypeSummary = "shop_type_summary"
	KindMonthOnMonth    = "month_on_month"
	KindStoreList       = "store_list"
	KindShopTypeList    = "shop_type_list"
	KindTranTypeList    = "tran_type_list"
)

// SalesCache stores JSON encoded API payloads.
type SalesCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SummaryTTL() time.Duration
	ListTTL() time.Duration
	InvalidateAll(ctx context.Context) error
}

type redisSalesCache struct {
	client     *redis.Client
	summaryTTL time.Duration
	listTTL    time.Duration
}

type noopSalesCache struct{}

// NewSalesCache returns a Redis backed cache, or a no-op cache when caching
// is disabled.
func NewSalesCache(cfg config.CacheConfig) (SalesCache, error) {
	if !cfg.Enabled {
		return &noopSalesCache{}, nil
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisSalesCache(client, cfg), nil
}

// NewRedisSalesCache wraps an existing client.
func NewRedisSalesCache(client *redis.Client, cfg config.CacheConfig) SalesCache {
	return &redisSalesCache{
		client:     client,
		summaryTTL: ttlOrDefault(cfg.SummaryTTLSeconds, defaultSummary),
		listTTL:    ttlOrDefault(cfg.ListTTLSeconds, defaultList),
	}
}

func NewNoopSalesCache() SalesCache {
	return &noopSalesCache{}
}

func (c *redisSalesCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *redisSalesCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSalesCache) SummaryTTL() time.Duration { return c.summaryTTL }
func (c *redisSalesCache) ListTTL() time.Duration    { return c.listTTL }

func (c *redisSalesCache) InvalidateAll(ctx context.Context) error {
	_, err := deleteKeysMatching(ctx, c.client, KeyPrefix+"*", scanBatchSize)
	return err
}

func (n *noopSalesCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

func (n *noopSalesCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (n *noopSalesCache) SummaryTTL() time.Duration { return defaultSummary }
func (n *noopSalesCache) ListTTL() time.Duration    { return defaultList }

func (n *noopSalesCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// SummaryKey derives the key of a filtered payload from the canonical
// filter string, e.g. "sales:store_summary:<sha1>".
func SummaryKey(kind string, f domain.FilterSet) string {
	hash := sha1.Sum([]byte(f.Key()))
	return fmt.Sprintf("%s%s:%s", KeyPrefix, kind, hex.EncodeToString(hash[:]))
}

// ListKey is the key of an unfiltered reference list.
func ListKey(kind string) string {
	return KeyPrefix + kind
}
