package service

import (
	"context"
	"time"

	"dstclan/internal/metrics"
	"dstclan/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// jsonCache stores read models in Redis as JSON. Failures only cost a cache miss.
//
// Entries live under "<key>:<generation>". invalidate bumps the generation, so a
// fill that read the store before a write lands under a generation nobody reads.
type jsonCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logger.Logger
}

func newJSONCache(rdb redis.Cmdable, ttl time.Duration, logger *logger.Logger) jsonCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return jsonCache{rdb: rdb, ttl: ttl, logger: logger}
}

// cacheFill the generation-qualified key a miss was observed at
type cacheFill struct {
	key string
}

func genKey(key string) string { return key + ":gen" }

// get decodes the cached value into dst. On a miss it returns the fill to pass to
// set once the value has been loaded.
func (c jsonCache) get(ctx context.Context, family, key string, dst interface{}) (cacheFill, bool) {
	gen, err := c.rdb.Get(ctx, genKey(key)).Result()
	switch {
	case err == redis.Nil:
		gen = "0"
	case err != nil:
		c.logger.Warn("cache read failed", "key", key, "error", err)
		metrics.RecordCache(family, false)
		return cacheFill{}, false
	}

	fill := cacheFill{key: key + ":" + gen}
	data, err := c.rdb.Get(ctx, fill.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "key", fill.key, "error", err)
		}
		metrics.RecordCache(family, false)
		return fill, false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("cache entry corrupt", "key", fill.key, "error", err)
		metrics.RecordCache(family, false)
		return fill, false
	}
	metrics.RecordCache(family, true)
	return fill, true
}

// set stores v for the generation of fill; a zero fill is ignored
func (c jsonCache) set(ctx context.Context, fill cacheFill, v interface{}) {
	if fill.key == "" {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fill.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", fill.key, "error", err)
	}
}

// invalidate moves the given keys to a new generation
func (c jsonCache) invalidate(ctx context.Context, keys ...string) {
	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, genKey(key))
		}
		return nil
	})
	if err != nil {
		c.logger.Error("cache invalidation failed", "keys", keys, "error", err)
	}
}
