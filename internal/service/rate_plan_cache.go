package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/pkg/redis"
)

const ratePlanCachePrefix = "rate_plans:listing:"

// RatePlanCache 房源价格方案快照缓存（含预加载的季节）
// 缓存故障只记录日志，不影响业务结果
type RatePlanCache interface {
	Get(ctx context.Context, listingID string) ([]model.RatePlan, bool)
	Set(ctx context.Context, listingID string, plans []model.RatePlan)
	Invalidate(ctx context.Context, listingID string)
	// InvalidateAll 季节变更会影响所有房源
	InvalidateAll(ctx context.Context)
}

// NewRatePlanCache rdb 为 nil 或 ttl<=0 时返回不缓存的实现
func NewRatePlanCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) RatePlanCache {
	if rdb == nil || ttl <= 0 {
		return noopRatePlanCache{}
	}
	return &redisRatePlanCache{rdb: rdb, ttl: ttl, logger: logger}
}

type redisRatePlanCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func ratePlanCacheKey(listingID string) string {
	return ratePlanCachePrefix + listingID
}

func (c *redisRatePlanCache) Get(ctx context.Context, listingID string) ([]model.RatePlan, bool) {
	var plans []model.RatePlan
	ok, err := c.rdb.GetJSON(ctx, ratePlanCacheKey(listingID), &plans)
	if err != nil {
		c.logger.Warn("读取价格方案缓存失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, false
	}
	return plans, ok
}

func (c *redisRatePlanCache) Set(ctx context.Context, listingID string, plans []model.RatePlan) {
	if plans == nil {
		plans = []model.RatePlan{}
	}
	if err := c.rdb.SetJSON(ctx, ratePlanCacheKey(listingID), plans, c.ttl); err != nil {
		c.logger.Warn("写入价格方案缓存失败", zap.String("listing_id", listingID), zap.Error(err))
	}
}

func (c *redisRatePlanCache) Invalidate(ctx context.Context, listingID string) {
	if err := c.rdb.Delete(ctx, ratePlanCacheKey(listingID)); err != nil {
		c.logger.Warn("清除价格方案缓存失败", zap.String("listing_id", listingID), zap.Error(err))
	}
}

func (c *redisRatePlanCache) InvalidateAll(ctx context.Context) {
	n, err := c.rdb.DeleteByPrefix(ctx, ratePlanCachePrefix)
	if err != nil {
		c.logger.Warn("清除全部价格方案缓存失败", zap.Error(err))
		return
	}
	c.logger.Debug("已清除价格方案缓存", zap.Int("keys", n))
}

type noopRatePlanCache struct{}

func (noopRatePlanCache) Get(context.Context, string) ([]model.RatePlan, bool) { return nil, false }
func (noopRatePlanCache) Set(context.Context, string, []model.RatePlan)        {}
func (noopRatePlanCache) Invalidate(context.Context, string)                   {}
func (noopRatePlanCache) InvalidateAll(context.Context)                        {}
