package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/pkg/redis"
)

func newMockRatePlanCache(t *testing.T) (RatePlanCache, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	cache := NewRatePlanCache(redis.NewFromClient(rdb, zap.NewNop()), time.Minute, zap.NewNop())
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return cache, mock
}

func TestNewRatePlanCache_Disabled(t *testing.T) {
	ctx := context.Background()
	for _, cache := range []RatePlanCache{
		NewRatePlanCache(nil, time.Minute, zap.NewNop()),
		NewRatePlanCache(redis.NewFromClient(nil, zap.NewNop()), 0, zap.NewNop()),
	} {
		cache.Set(ctx, "L1", []model.RatePlan{{ID: "P1"}})
		_, ok := cache.Get(ctx, "L1")
		assert.False(t, ok)
		cache.Invalidate(ctx, "L1")
		cache.InvalidateAll(ctx)
	}
}

func TestRatePlanCache_Get(t *testing.T) {
	cache, mock := newMockRatePlanCache(t)
	ctx := context.Background()

	mock.ExpectGet("rate_plans:listing:L1").RedisNil()
	_, ok := cache.Get(ctx, "L1")
	assert.False(t, ok)

	mock.ExpectGet("rate_plans:listing:L1").SetVal(
		`[{"id":"P1","listing_id":"L1","season_id":"S1","price":"1500","rate_adjustment":{"type":"percentage","value":"10"},"season":{"id":"S1","name":"Holiday Peak","priority":1}}]`,
	)
	plans, ok := cache.Get(ctx, "L1")
	require.True(t, ok)
	require.Len(t, plans, 1)
	assert.Equal(t, "P1", plans[0].ID)
	assert.Equal(t, "1500", plans[0].Price.String())
	assert.Equal(t, "percentage", plans[0].RateAdjustment.Data().Type)
	require.NotNil(t, plans[0].Season)
	assert.Equal(t, "Holiday Peak", plans[0].Season.Name)

	mock.ExpectGet("rate_plans:listing:L1").SetErr(errors.New("connection refused"))
	_, ok = cache.Get(ctx, "L1")
	assert.False(t, ok)
}

func TestRatePlanCache_Invalidate(t *testing.T) {
	cache, mock := newMockRatePlanCache(t)
	ctx := context.Background()

	mock.ExpectDel("rate_plans:listing:L1").SetVal(1)
	cache.Invalidate(ctx, "L1")

	mock.ExpectScan(0, "rate_plans:listing:*", 100).SetVal([]string{"rate_plans:listing:L1", "rate_plans:listing:L2"}, 0)
	mock.ExpectDel("rate_plans:listing:L1", "rate_plans:listing:L2").SetVal(2)
	cache.InvalidateAll(ctx)

	// 缓存故障不向上抛出
	mock.ExpectDel("rate_plans:listing:L2").SetErr(errors.New("connection refused"))
	cache.Invalidate(ctx, "L2")
}
