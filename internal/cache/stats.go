package cache

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyTTL is one sampled key with its remaining lifetime. TTL is negative
// for keys without expiry.
type KeyTTL struct {
	Key string
	TTL time.Duration
}

// Stats summarises a Redis instance for operators.
type Stats struct {
	ConnectedClients int64
	UsedMemoryHuman  string
	Keys             int64
	Hits             int64
	Misses           int64
	Sample           []KeyTTL
}

// HitRate is hits over lookups as a percentage, 0 when there were none.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Inspect gathers server counters and up to sampleSize keys with their TTL.
func Inspect(ctx context.Context, client *redis.Client, sampleSize int) (Stats, error) {
	var stats Stats

	info, err := client.Info(ctx, "clients", "memory", "stats").Result()
	if err != nil {
		return stats, fmt.Errorf("redis info failed: %w", err)
	}
	fields := parseInfo(info)
	stats.ConnectedClients = parseInt(fields["connected_clients"])
	stats.UsedMemoryHuman = fields["used_memory_human"]
	stats.Hits = parseInt(fields["keyspace_hits"])
	stats.Misses = parseInt(fields["keyspace_misses"])

	if stats.Keys, err = client.DBSize(ctx).Result(); err != nil {
		return stats, fmt.Errorf("redis dbsize failed: %w", err)
	}

	if stats.Sample, err = sampleKeys(ctx, client, sampleSize); err != nil {
		return stats, err
	}
	return stats, nil
}

func sampleKeys(ctx context.Context, client *redis.Client, n int) ([]KeyTTL, error) {
	var (
		cursor uint64
		out    []KeyTTL
	)
	for len(out) < n {
		keys, next, err := client.Scan(ctx, cursor, "*", scanBatchSize).Result()
		if err != nil {
			return out, fmt.Errorf("redis scan failed: %w", err)
		}
		for _, k := range keys {
			if len(out) >= n {
				break
			}
			ttl, err := client.TTL(ctx, k).Result()
			if err != nil {
				return out, fmt.Errorf("redis ttl failed: %w", err)
			}
			out = append(out, KeyTTL{Key: k, TTL: ttl})
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return out, nil
}

// Clear deletes keys containing pattern, or flushes the database when
// pattern is empty. It returns the number of deleted keys, -1 for a flush.
func Clear(ctx context.Context, client *redis.Client, pattern string) (int, error) {
	if strings.TrimSpace(pattern) == "" {
		if err := client.FlushDB(ctx).Err(); err != nil {
			return 0, fmt.Errorf("redis flushdb failed: %w", err)
		}
		return -1, nil
	}
	return deleteKeysMatching(ctx, client, "*"+pattern+"*", scanBatchSize)
}

// parseInfo reads "key:value" lines of an INFO reply, skipping section
// headers.
func parseInfo(info string) map[string]string {
	out := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(info))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

func parseInt(v string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
