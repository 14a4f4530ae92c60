// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/animetrack/internal/achievement"
)

/*
TestRedisCache_RoundTrip runs against a live Redis when TEST_REDIS_URL is set.
*/
func TestRedisCache_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	options, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })

	cache := achievement.NewRedisCache(client, time.Minute)
	ctx := context.Background()
	userID := "cache-test-" + time.Now().Format("150405.000000")

	// 1. Miss
	_, found, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, found)

	// 2. Hit
	generation, err := cache.Generation(ctx, userID)
	require.NoError(t, err)
	set := achievement.Compute(achievement.DefaultCatalog(), achievement.Inputs{Watching: 5})
	require.NoError(t, cache.Put(ctx, userID, generation, set))

	cached, found, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, set, cached)

	// 3. Invalidated
	require.NoError(t, cache.Invalidate(ctx, userID))
	_, found, err = cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, found)

	// 4. A write taken at the old generation is dropped
	require.NoError(t, cache.Put(ctx, userID, generation, set))
	_, found, err = cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, found)

	next, err := cache.Generation(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, generation+1, next)
}

func TestNopCache(t *testing.T) {
	var cache achievement.Cache = achievement.NopCache{}
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "user", 0, achievement.Set{}))
	_, found, err := cache.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.Invalidate(ctx, "user"))
}
