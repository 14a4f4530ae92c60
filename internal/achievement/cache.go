// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/animetrack/internal/platform/constants"
)

// Cache stores computed sets per user. A miss is reported with found=false and a nil error.
//
// Every user has a generation counter that Invalidate advances. A reader takes
// the generation before computing a set and hands it back to Put, which drops
// the write when the generation has moved on in between.
type Cache interface {
	Get(context context.Context, userID string) (set Set, found bool, err error)
	Generation(context context.Context, userID string) (int64, error)
	Put(context context.Context, userID string, generation int64, set Set) error
	Invalidate(context context.Context, userID string) error
}

// RedisCache implements [Cache] with JSON values under a per-user key.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed [Cache]. A zero ttl keeps entries until invalidated.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(userID string) string {
	return constants.RedisPrefixAchievements + userID
}

func generationKey(userID string) string {
	return constants.RedisPrefixAchievementGeneration + userID
}

// Get returns the cached set of a user.
func (cache *RedisCache) Get(context context.Context, userID string) (Set, bool, error) {
	payload, err := cache.client.Get(context, cacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_achievement_get_failed: %w", err)
	}

	var set Set
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, false, fmt.Errorf("redis_achievement_decode_failed: %w", err)
	}

	return set, true, nil
}

// Generation returns the current generation of a user. A missing counter reads as zero.
func (cache *RedisCache) Generation(context context.Context, userID string) (int64, error) {
	return readGeneration(context, cache.client, userID)
}

// getter is the read side shared by *redis.Client and *redis.Tx.
type getter interface {
	Get(context context.Context, key string) *redis.StringCmd
}

func readGeneration(context context.Context, client getter, userID string) (int64, error) {
	generation, err := client.Get(context, generationKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_achievement_generation_failed: %w", err)
	}
	return generation, nil
}

/*
Put stores the set of a user with the configured TTL.

Description: The write runs under WATCH on the generation counter. It is
skipped when the counter no longer equals generation, and aborted when an
Invalidate lands between the check and the write.
*/
func (cache *RedisCache) Put(context context.Context, userID string, generation int64, set Set) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("redis_achievement_encode_failed: %w", err)
	}

	err = cache.client.Watch(context, func(transaction *redis.Tx) error {
		current, err := readGeneration(context, transaction, userID)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = transaction.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, cacheKey(userID), payload, cache.ttl)
			return nil
		})
		return err
	}, generationKey(userID))

	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("redis_achievement_set_failed: %w", err)
	}

	return nil
}

// Invalidate advances the generation of a user and drops the cached set.
func (cache *RedisCache) Invalidate(context context.Context, userID string) error {
	_, err := cache.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, generationKey(userID))
		pipe.Del(context, cacheKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_achievement_invalidate_failed: %w", err)
	}
	return nil
}

// NopCache never stores anything. It is used when caching is disabled.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (Set, bool, error) { return nil, false, nil }
func (NopCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (NopCache) Put(context.Context, string, int64, Set) error { return nil }
func (NopCache) Invalidate(context.Context, string) error { return nil }
