package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstepanenko/storefront/internal/logging"
	"github.com/dstepanenko/storefront/internal/server/models"
)

type fakeRedis struct {
	getVal string
	getErr error

	setErr error
	setKey string
	setTTL time.Duration

	delErr error
	delKey string
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult(f.getVal, f.getErr)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.setKey = key
	f.setTTL = expiration
	return redis.NewStatusResult("OK", f.setErr)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if len(keys) > 0 {
		f.delKey = keys[0]
	}
	return redis.NewIntResult(1, f.delErr)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleViews() []*models.ItemView {
	return []*models.ItemView{
		{ID: 1, Name: "mug", Count: 3, Price: models.Price{Original: 500, Discount: 450},
			Tags: []models.TagRef{{ID: 7, Name: "kitchen"}}},
		{ID: 2, Name: "shirt", Count: 1, Price: models.Price{Original: 1500, Discount: 1500},
			Tags: []models.TagRef{}},
	}
}

func TestItemsCache_GetHit(t *testing.T) {
	views := sampleViews()
	data, err := json.Marshal(views)
	require.NoError(t, err)

	c := NewItemsCache(&fakeRedis{getVal: string(data)}, time.Minute, testLogger())

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, views, got)
}

func TestItemsCache_GetMiss(t *testing.T) {
	c := NewItemsCache(&fakeRedis{getErr: redis.Nil}, time.Minute, testLogger())

	got, ok := c.Get(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestItemsCache_GetRedisErrorIsMiss(t *testing.T) {
	c := NewItemsCache(&fakeRedis{getErr: errors.New("connection refused")}, time.Minute, testLogger())

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestItemsCache_GetCorruptPayloadIsMiss(t *testing.T) {
	c := NewItemsCache(&fakeRedis{getVal: "{not json"}, time.Minute, testLogger())

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestItemsCache_SetUsesConfiguredTTL(t *testing.T) {
	f := &fakeRedis{}
	c := NewItemsCache(f, 30*time.Second, testLogger())

	c.Set(context.Background(), sampleViews())

	assert.Equal(t, "items:list", f.setKey)
	assert.Equal(t, 30*time.Second, f.setTTL)
}

func TestItemsCache_SetErrorIsSwallowed(t *testing.T) {
	f := &fakeRedis{setErr: errors.New("boom")}
	c := NewItemsCache(f, time.Minute, testLogger())

	assert.NotPanics(t, func() { c.Set(context.Background(), sampleViews()) })
}

func TestItemsCache_Invalidate(t *testing.T) {
	f := &fakeRedis{}
	c := NewItemsCache(f, time.Minute, testLogger())

	c.Invalidate(context.Background())
	assert.Equal(t, "items:list", f.delKey)
}

func TestItemsCache_InvalidateErrorIsSwallowed(t *testing.T) {
	f := &fakeRedis{delErr: errors.New("boom")}
	c := NewItemsCache(f, time.Minute, testLogger())

	assert.NotPanics(t, func() { c.Invalidate(context.Background()) })
}
