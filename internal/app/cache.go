package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/metrics"
	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
)

// DashboardCache memoizes computed dashboards in redis. A nil client makes
// every call a miss.
type DashboardCache struct {
	redis       *redis.Client
	prefix      string
	ttl         time.Duration
	granularity time.Duration
}

func NewDashboardCache(client *redis.Client, prefix string, ttl, granularity time.Duration) *DashboardCache {
	return &DashboardCache{
		redis:       client,
		prefix:      prefix,
		ttl:         ttl,
		granularity: granularity,
	}
}

func NewDashboardCacheFromConfig(config *Config) (*DashboardCache, error) {
	ttl := time.Duration(config.Cache.TTLSeconds) * time.Second
	granularity := time.Duration(config.Cache.GranularitySeconds) * time.Second
	if !config.Cache.Enabled {
		return NewDashboardCache(nil, config.Cache.KeyPrefix, ttl, granularity), nil
	}

	url := config.Cache.RedisURL
	if url == "" {
		url = config.Auth.RedisURL
	}
	client, err := connectRedis(url)
	if err != nil {
		return nil, fmt.Errorf("dashboard cache: %w", err)
	}
	return NewDashboardCache(client, config.Cache.KeyPrefix, ttl, granularity), nil
}

// Key changes whenever the snapshot, the targets or the truncated clock change.
func (c *DashboardCache) Key(snap scoring.Snapshot, defaults scoring.Targets, now time.Time) (string, error) {
	payload, err := json.Marshal(struct {
		Snapshot scoring.Snapshot `json:"snapshot"`
		Targets  scoring.Targets  `json:"targets"`
		At       int64            `json:"at"`
	}{snap, defaults, now.Truncate(c.granularity).Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return c.prefix + snap.Profile.Student + ":" + hex.EncodeToString(sum[:]), nil
}

func (c *DashboardCache) Get(ctx context.Context, key string) (*scoring.Dashboard, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		logger.Error.Printf("dashboard cache get %s: %v", key, err)
		metrics.DashboardCacheTotal.WithLabelValues("error").Inc()
		return nil, false
	}

	var d scoring.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		logger.Error.Printf("dashboard cache decode %s: %v", key, err)
		metrics.DashboardCacheTotal.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
	return &d, true
}

func (c *DashboardCache) Put(ctx context.Context, key string, d scoring.Dashboard) {
	if c == nil || c.redis == nil {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		logger.Error.Printf("dashboard cache encode: %v", err)
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Error.Printf("dashboard cache set %s: %v", key, err)
	}
}

func (c *DashboardCache) Close() error {
	if c != nil && c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
