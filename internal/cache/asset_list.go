package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

const assetListKey = "assets:all"

// AssetListCache keeps the unfiltered asset listing in redis. All methods
// degrade to no-ops when the client is absent or unreachable; the cache is
// never authoritative.
type AssetListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAssetListCache builds the cache. A nil client disables it.
func NewAssetListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AssetListCache {
	return &AssetListCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached listing and whether it was present.
func (c *AssetListCache) Get(ctx context.Context) ([]domain.Asset, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, assetListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("asset list cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var assets []domain.Asset
	if err := json.Unmarshal(raw, &assets); err != nil {
		c.logger.Warn("asset list cache decode failed", zap.Error(err))
		return nil, false
	}
	return assets, true
}

// Set stores the listing for the configured TTL.
func (c *AssetListCache) Set(ctx context.Context, assets []domain.Asset) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(assets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, assetListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("asset list cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing. Called on every asset mutation.
func (c *AssetListCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, assetListKey).Err(); err != nil {
		c.logger.Warn("asset list cache invalidate failed", zap.Error(err))
	}
}
