package redis

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type snapshot struct {
	ListingID string   `json:"listing_id"`
	Prices    []string `json:"prices"`
}

func newMockClient(t *testing.T) (*Client, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	c := NewFromClient(rdb, zap.NewNop())
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return c, mock
}

func TestGetJSON_Hit(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectGet("rate_plans:L1").SetVal(`{"listing_id":"L1","prices":["100.00"]}`)

	var got snapshot
	ok, err := c.GetJSON(context.Background(), "rate_plans:L1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "L1", got.ListingID)
	assert.Equal(t, []string{"100.00"}, got.Prices)
}

func TestGetJSON_Miss(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectGet("rate_plans:L1").RedisNil()

	var got snapshot
	ok, err := c.GetJSON(context.Background(), "rate_plans:L1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetJSON_CorruptValueIsDropped(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectGet("rate_plans:L1").SetVal(`{not json`)
	mock.ExpectDel("rate_plans:L1").SetVal(1)

	var got snapshot
	ok, err := c.GetJSON(context.Background(), "rate_plans:L1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetJSON_Error(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectGet("rate_plans:L1").SetErr(errors.New("connection refused"))

	var got snapshot
	_, err := c.GetJSON(context.Background(), "rate_plans:L1", &got)
	assert.Error(t, err)
}

func TestSetJSON(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectSet("rate_plans:L1", []byte(`{"listing_id":"L1","prices":null}`), 10*time.Minute).SetVal("OK")

	err := c.SetJSON(context.Background(), "rate_plans:L1", snapshot{ListingID: "L1"}, 10*time.Minute)
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectDel("a", "b").SetVal(2)

	assert.NoError(t, c.Delete(context.Background(), "a", "b"))
	assert.NoError(t, c.Delete(context.Background()))
}

func TestDeleteByPrefix(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectScan(0, "rate_plans:*", scanBatch).SetVal([]string{"rate_plans:L1", "rate_plans:L2"}, 7)
	mock.ExpectDel("rate_plans:L1", "rate_plans:L2").SetVal(2)
	mock.ExpectScan(7, "rate_plans:*", scanBatch).SetVal([]string{"rate_plans:L3"}, 0)
	mock.ExpectDel("rate_plans:L3").SetVal(1)

	n, err := c.DeleteByPrefix(context.Background(), "rate_plans:")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCheckRateLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	window := time.Minute
	start := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	t.Run("未达上限", func(t *testing.T) {
		c, mock := newMockClient(t)
		c.now = func() time.Time { return now }

		mock.ExpectZRemRangeByScore("rl:k", "-inf", start).SetVal(0)
		mock.ExpectZCard("rl:k").SetVal(2)
		mock.ExpectZAdd("rl:k", goredis.Z{
			Score:  float64(now.UnixNano()),
			Member: strconv.FormatInt(now.UnixNano(), 10),
		}).SetVal(1)
		mock.ExpectExpire("rl:k", window).SetVal(true)

		ok, err := c.CheckRateLimit(context.Background(), "rl:k", 3, window)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("达到上限", func(t *testing.T) {
		c, mock := newMockClient(t)
		c.now = func() time.Time { return now }

		mock.ExpectZRemRangeByScore("rl:k", "-inf", start).SetVal(1)
		mock.ExpectZCard("rl:k").SetVal(3)

		ok, err := c.CheckRateLimit(context.Background(), "rl:k", 3, window)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Redis 出错", func(t *testing.T) {
		c, mock := newMockClient(t)
		c.now = func() time.Time { return now }

		mock.ExpectZRemRangeByScore("rl:k", "-inf", start).SetErr(errors.New("down"))

		_, err := c.CheckRateLimit(context.Background(), "rl:k", 3, window)
		assert.Error(t, err)
	})
}
