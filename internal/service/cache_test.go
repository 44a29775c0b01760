package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCache_Generations(t *testing.T) {
	_, rdb := newTestRedis(t)
	cache := newJSONCache(rdb, time.Minute, testLogger())
	ctx := context.Background()

	var got []string
	fill, hit := cache.get(ctx, "news", newsListKey, &got)
	require.False(t, hit)
	cache.set(ctx, fill, []string{"first"})

	_, hit = cache.get(ctx, "news", newsListKey, &got)
	require.True(t, hit)
	assert.Equal(t, []string{"first"}, got)

	// a fill started before a write must not be served after it
	stale, hit := cache.get(ctx, "news", vipTiersKey, &got)
	require.False(t, hit)
	cache.invalidate(ctx, newsListKey, vipTiersKey)
	cache.set(ctx, stale, []string{"stale"})

	got = nil
	_, hit = cache.get(ctx, "news", newsListKey, &got)
	assert.False(t, hit)
	_, hit = cache.get(ctx, "vip", vipTiersKey, &got)
	assert.False(t, hit)
	assert.Nil(t, got)
}
